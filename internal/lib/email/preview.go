package email

// PreviewData holds sample data for rendering each template locally.
var PreviewData = map[Template]any{
	TemplateWelcome: WelcomeData{
		Name:  "ari",
		Email: "ari@wooteco.com",
	},
	TemplateOrderConfirmation: NewOrderConfirmationData("ari", 1, []OrderConfirmationItem{
		{Name: "banana", Quantity: 2, Price: 1000},
		{Name: "apple", Quantity: 1, Price: 2000},
	}),
}
