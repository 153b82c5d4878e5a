package entity

const (
	// StatusNew is the initial status assigned to every submitted order.
	// Later values are admin-defined labels, not a closed enum.
	StatusNew = "new"

	// CreatedAtLayout is the wall-clock format stored on orders and
	// echoed into the export log.
	CreatedAtLayout = "02/01/2006 15:04:05"
)

type Order struct {
	ID            int            `json:"id"`
	CustomerName  string         `json:"customer_name"`
	Phone         string         `json:"phone"`
	Address       string         `json:"address"`
	AddressNumber string         `json:"address_number"`
	PaymentMethod string         `json:"payment_method"`
	Items         map[string]int `json:"items"` // product name -> quantity, zero entries included
	Total         float64        `json:"total"`
	Notes         string         `json:"notes"`
	Status        string         `json:"status"`
	CreatedAt     string         `json:"created_at"`
}

type Product struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

type Rating struct {
	Author  string `json:"author"`
	Stars   int    `json:"stars"`
	Comment string `json:"comment"`
}
