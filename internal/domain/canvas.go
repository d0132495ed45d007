package domain

// Position is an integer pixel coordinate on the canvas grid.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// PlacedComponent is an owned catalog item instantiated on the canvas.
// The instance ID is derived from the type plus a per-type sequence number
// and is never recycled after removal.
type PlacedComponent struct {
	ID       string   `json:"id"`
	Type     string   `json:"type"` // catalog item id
	Position Position `json:"position"`
	Tier     int      `json:"tier"` // starts at 1, only ever raised by paid upgrades
}

// Connection is a directed, category-validated edge between two placed
// component instance ids. Destroyed when either endpoint is removed.
type Connection struct {
	From string `json:"from"`
	To   string `json:"to"`
	Type string `json:"type"`
}
