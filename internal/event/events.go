package event

const (
	TopicCustomerCreated   = "crm.customer.created"
	TopicProductCreated    = "crm.product.created"
	TopicOrderCreated      = "crm.order.created"
	TopicProductsRestocked = "crm.products.restocked"
)

type CustomerCreatedEvent struct {
	CustomerID string  `json:"customer_id"`
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Phone      *string `json:"phone,omitempty"`
}

type ProductCreatedEvent struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Price     string `json:"price"`
	Stock     int    `json:"stock"`
}

type OrderCreatedEvent struct {
	OrderID     string   `json:"order_id"`
	CustomerID  string   `json:"customer_id"`
	ProductIDs  []string `json:"product_ids"`
	TotalAmount string   `json:"total_amount"`
	OrderDate   string   `json:"order_date"`
}

type RestockedProduct struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Stock     int    `json:"stock"`
}

type ProductsRestockedEvent struct {
	Products []RestockedProduct `json:"products"`
}
