package nomenclature

// PreSalColumns is the fixed canonical output schema. Order is the output
// column order; the row transformer writes by index.
var PreSalColumns = []string{
	"ID",
	"Order QTY",
	"Build QTY",
	"Label",
	"Receptacle Type",
	"Cable/Conduit Type",
	"Length (ft)",
	"Tail Length (ft)",
	"Conduit Size",
	"Voltage (V)",
	"Current (A)",
	"Phase",
	"Wire Gauge (AWG)",
	"Conductor Count",
	"Ground Wire",
	"Neutral Wire",
	"Breaker Rating",
	"Plug Orientation",
	"Mounting",
	"Enclosure",
	"Label Color",
	"Jacket Color",
	"Origin",
	"Destination",
	"Rack",
	"Row",
	"Cage",
	"Circuit ID",
	"Panel",
	"Source Breaker",
	"PDU",
	"PDU Slot",
	"Drawing Ref",
	"Notes",
	"Other",
	"Unit Cost",
	"Material Cost",
	"Labor Cost",
	"Margin (%)",
	"Unit Price",
	"Extended Price",
	"Lead Time (days)",
	"Vendor",
	"Part Number",
	"Assembly Code",
	"Test Required",
	"Certification",
	"Install Zone",
	"Revision",
	"Status",
}

var presalIndex = buildIndex()

func buildIndex() map[string]int {
	m := make(map[string]int, len(PreSalColumns))
	for i, name := range PreSalColumns {
		m[name] = i
	}
	return m
}

// ColumnIndex resolves a canonical column name to its position, -1 if the
// name is not part of the schema.
func ColumnIndex(name string) int {
	if i, ok := presalIndex[name]; ok {
		return i
	}
	return -1
}
