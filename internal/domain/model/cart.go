package model

const (
	// per configured line
	MaxQuantityPerLine = 10
	// across the whole cart, checked again at checkout
	MaxCartItems = 20
)

// Cart is the session's list of lines.
type Cart struct {
	Lines []CartLine `json:"items"`
}

// ItemCount is the sum of line quantities.
func (c Cart) ItemCount() int {
	n := 0
	for _, l := range c.Lines {
		n += l.Qty()
	}
	return n
}
