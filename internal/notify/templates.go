package notify

import (
	"fmt"

	"github.com/zwelix28/canna-bomb-sub001/internal/models"
)

type EmailKind string

const (
	EmailOrderPlaced     EmailKind = "order_placed"
	EmailOrderConfirmed  EmailKind = "order_confirmed"
	EmailOrderProcessing EmailKind = "order_processing"
	EmailOrderReady      EmailKind = "order_ready"
	EmailOrderCompleted  EmailKind = "order_completed"
	EmailOrderCancelled  EmailKind = "order_cancelled"
	EmailInvoice         EmailKind = "invoice"
	EmailAdminNewOrder   EmailKind = "admin_new_order"
)

// statusEmailKinds maps an order status to its customer email. Statuses
// without an entry send nothing.
var statusEmailKinds = map[models.OrderStatus]EmailKind{
	models.OrderStatusConfirmed:  EmailOrderConfirmed,
	models.OrderStatusProcessing: EmailOrderProcessing,
	models.OrderStatusReady:      EmailOrderReady,
	models.OrderStatusCompleted:  EmailOrderCompleted,
	models.OrderStatusCancelled:  EmailOrderCancelled,
}

var emailSubjects = map[EmailKind]string{
	EmailOrderPlaced:     "Your Canna Bomb order %s",
	EmailOrderConfirmed:  "Order %s confirmed",
	EmailOrderProcessing: "Order %s is being prepared",
	EmailOrderReady:      "Order %s is ready for collection",
	EmailOrderCompleted:  "Order %s collected, thank you!",
	EmailOrderCancelled:  "Order %s has been cancelled",
	EmailInvoice:         "Invoice for order %s",
	EmailAdminNewOrder:   "New order %s",
}

// PushMessage is the payload rendered into the web-push JSON body.
type PushMessage struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// pushTemplates holds the per-status push copy. A status without an entry is
// a silent no-op: not every transition warrants a push.
var pushTemplates = map[models.OrderStatus]PushMessage{
	models.OrderStatusPending:   {Title: "Order received", Body: "Order %s has been placed. We'll confirm it shortly."},
	models.OrderStatusConfirmed: {Title: "Order confirmed", Body: "Order %s is confirmed. We'll let you know when it's ready."},
	models.OrderStatusReady:     {Title: "Ready for collection", Body: "Order %s is ready, come pick it up!"},
	models.OrderStatusCompleted: {Title: "Order collected", Body: "Order %s is complete. Thanks for shopping with us."},
	models.OrderStatusCancelled: {Title: "Order cancelled", Body: "Order %s has been cancelled."},
}

func pushMessageFor(order *models.Order) (PushMessage, bool) {
	tpl, ok := pushTemplates[order.Status]
	if !ok {
		return PushMessage{}, false
	}
	tpl.Body = fmt.Sprintf(tpl.Body, order.Number)
	return tpl, true
}

const emailLayout = `<!DOCTYPE html>
<html>
<body style="font-family:Arial,sans-serif;color:#222;max-width:560px;margin:0 auto">
  <h2 style="color:#2e7d32">Canna Bomb</h2>
  <p>{{.Intro}}</p>
  <p><strong>Order {{.Number}}</strong> &mdash; {{.Date}}</p>
  <table style="width:100%;border-collapse:collapse">
    {{range .Items}}
    <tr>
      <td style="padding:4px 0">{{.Name}} &times; {{.Quantity}}</td>
      <td style="padding:4px 0;text-align:right">{{.LineTotal}}</td>
    </tr>
    {{end}}
    <tr><td style="padding-top:8px">Subtotal</td><td style="padding-top:8px;text-align:right">{{.Subtotal}}</td></tr>
    {{if .ShowTax}}<tr><td>Tax</td><td style="text-align:right">{{.Tax}}</td></tr>{{end}}
    {{if .ShowTip}}<tr><td>Tip</td><td style="text-align:right">{{.Tip}}</td></tr>{{end}}
    <tr><td style="font-weight:bold">Total</td><td style="font-weight:bold;text-align:right">{{.Total}}</td></tr>
  </table>
  {{if .Collection}}<p>{{.Collection}}</p>{{end}}
  {{if .Outro}}<p>{{.Outro}}</p>{{end}}
</body>
</html>`

var emailIntros = map[EmailKind]string{
	EmailOrderPlaced:     "Thanks for your order! We have received it and will confirm it shortly.",
	EmailOrderConfirmed:  "Good news: your order has been confirmed.",
	EmailOrderProcessing: "Your order is being prepared.",
	EmailOrderReady:      "Your order is ready for collection.",
	EmailOrderCompleted:  "Your order has been collected. We hope to see you again soon!",
	EmailOrderCancelled:  "Your order has been cancelled. Any reserved items have been returned to stock.",
	EmailInvoice:         "Please find the invoice for your completed order below.",
	EmailAdminNewOrder:   "A new order has just been placed.",
}

// EmailData is the view model rendered into emailLayout.
type EmailData struct {
	Intro      string
	Number     string
	Date       string
	Items      []EmailItem
	Subtotal   string
	Tax        string
	Tip        string
	Total      string
	ShowTax    bool
	ShowTip    bool
	Collection string
	Outro      string
}

type EmailItem struct {
	Name      string
	Quantity  uint32
	LineTotal string
}

func formatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s$%d.%02d", sign, cents/100, cents%100)
}

func buildEmailData(kind EmailKind, order *models.Order) EmailData {
	d := EmailData{
		Intro:    emailIntros[kind],
		Number:   order.Number,
		Date:     order.CreatedAt.Format("2 Jan 2006 15:04"),
		Subtotal: formatCents(order.SubtotalCents),
		Tax:      formatCents(order.TaxCents),
		Tip:      formatCents(order.TipCents),
		Total:    formatCents(order.TotalCents),
		ShowTax:  order.TaxCents > 0,
		ShowTip:  order.TipCents > 0,
	}
	for _, it := range order.Items {
		d.Items = append(d.Items, EmailItem{
			Name:      it.Name,
			Quantity:  it.Quantity,
			LineTotal: formatCents(it.LineTotalCents),
		})
	}
	switch order.CollectionMethod {
	case models.CollectionPreOrder:
		d.Collection = fmt.Sprintf("Collection: pre-order pickup on %s at %s.", order.CollectionDate, order.CollectionTime)
	case models.CollectionWalkIn:
		d.Collection = "Collection: walk-in pickup."
	}
	if kind == EmailAdminNewOrder {
		d.Outro = fmt.Sprintf("Customer: %s (%s, %s)", order.CustomerName, order.CustomerEmail, order.CustomerPhone)
	}
	return d
}

func subjectFor(kind EmailKind, order *models.Order) string {
	tpl, ok := emailSubjects[kind]
	if !ok {
		tpl = "Canna Bomb order %s"
	}
	return fmt.Sprintf(tpl, order.Number)
}
