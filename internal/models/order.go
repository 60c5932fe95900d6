package models

// Order is an open document: the store accepts any JSON object the client submits.
// Clients usually send product references and quantities, but no field is checked.
type Order map[string]any

// OrderResponse is returned after an order has been stored.
type OrderResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// OrderPlacedMessage is the confirmation returned with every stored order.
const OrderPlacedMessage = "Order placed successfully"

// UnmarshalJSON keeps submitted integers exact instead of widening them to float64.
func (o *Order) UnmarshalJSON(data []byte) error {
	doc, err := DecodeDocument(data)
	if err != nil {
		return err
	}
	*o = Order(doc)
	return nil
}
