package email

type WelcomeData struct {
	Name  string
	Email string
}

func (c *Client) SendWelcomeEmail(to, name string) error {
	return c.SendEmail(to, "Welcome to Shopping Cart!", TemplateWelcome, WelcomeData{
		Name:  name,
		Email: to,
	})
}

type OrderConfirmationItem struct {
	Name     string
	Quantity int
	Price    int32
}

type OrderConfirmationData struct {
	Name    string
	OrderID int64
	Items   []OrderConfirmationItem
	Total   int64
}

// NewOrderConfirmationData totals the line prices.
func NewOrderConfirmationData(name string, orderID int64, items []OrderConfirmationItem) OrderConfirmationData {
	var total int64
	for _, item := range items {
		total += int64(item.Price) * int64(item.Quantity)
	}
	return OrderConfirmationData{Name: name, OrderID: orderID, Items: items, Total: total}
}

func (c *Client) SendOrderConfirmationEmail(to string, data OrderConfirmationData) error {
	return c.SendEmail(to, "Your order has been placed", TemplateOrderConfirmation, data)
}
