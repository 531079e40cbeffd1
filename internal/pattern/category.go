package pattern

// Category is a domain pattern category recognized in cell values.
type Category string

const (
	CategoryReceptacle Category = "receptacle"
	CategoryCable      Category = "cable"
	CategoryLength     Category = "length"
	CategoryTailLength Category = "tailLength"
	CategoryVoltage    Category = "voltage"
	CategoryCurrent    Category = "current"
	CategoryWireGauge  Category = "wireGauge"
	CategoryColor      Category = "color"
	CategoryGeneral    Category = "general"
)

// standardColumns maps a category to its canonical PreSal column label.
var standardColumns = map[Category]string{
	CategoryLength:     "Length (ft)",
	CategoryTailLength: "Tail Length (ft)",
	CategoryReceptacle: "Receptacle Type",
	CategoryVoltage:    "Voltage (V)",
	CategoryCurrent:    "Current (A)",
	CategoryCable:      "Cable/Conduit Type",
	CategoryWireGauge:  "Wire Gauge (AWG)",
	CategoryColor:      "Label Color",
}

// StandardColumn returns the canonical column label for a category,
// "Other" when the category has no dedicated column.
func StandardColumn(c Category) string {
	if col, ok := standardColumns[c]; ok {
		return col
	}
	return "Other"
}
