package repository

import "gorm.io/gorm"

type Repository struct {
	DB         *gorm.DB
	Users      UserRepo
	Products   ProductRepo
	CartItems  CartRepo
	Orders     OrderRepo
	OrderItems OrderItemRepo
	PushSubs   PushSubscriptionRepo
}

func New(db *gorm.DB) *Repository {
	return &Repository{
		DB:         db,
		Users:      NewUserRepo(db),
		Products:   NewProductRepo(db),
		CartItems:  NewCartRepo(db),
		Orders:     NewOrderRepo(db),
		OrderItems: NewOrderItemRepo(db),
		PushSubs:   NewPushSubscriptionRepo(db),
	}
}
