package entity

// Warehouse representa una bodega donde se almacenan productos.
// Solo lectura desde el núcleo de fulfillment.
type Warehouse struct {
	ID      int64
	Name    string
	Address string
}
