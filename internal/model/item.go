package model

// ItemKind enumerates the garment types a detail row can carry. The numeric
// values are fixed by convention and shared by the submission and retrieval
// paths; there is no lookup table behind them.
type ItemKind int

const (
	ItemTShirt ItemKind = iota + 1
	ItemShirt
	ItemPant
	ItemBedsheet
)

var itemNames = map[ItemKind]string{
	ItemTShirt:   "tshirt",
	ItemShirt:    "shirt",
	ItemPant:     "pant",
	ItemBedsheet: "bedsheet",
}

// Kinds returns all known item kinds in their conventional order.
func Kinds() []ItemKind {
	return []ItemKind{ItemTShirt, ItemShirt, ItemPant, ItemBedsheet}
}

func (k ItemKind) String() string {
	if name, ok := itemNames[k]; ok {
		return name
	}
	return "unknown"
}

// Known reports whether k is one of the four conventional item kinds.
func (k ItemKind) Known() bool {
	_, ok := itemNames[k]
	return ok
}

// Quantities maps item kinds to garment counts for one record.
type Quantities map[ItemKind]int
