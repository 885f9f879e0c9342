package model

// EntryKind identifies one of the four Modbus register tables.
type EntryKind int

const (
	DiscreteInput EntryKind = iota
	Coil
	InputRegister
	HoldingRegister
)

// Kinds lists the tables in generation order. The position of a kind in this
// slice is its table index in generated code and must never change.
var Kinds = []EntryKind{DiscreteInput, Coil, InputRegister, HoldingRegister}

func (k EntryKind) String() string {
	switch k {
	case DiscreteInput:
		return "DiscreteInput"
	case Coil:
		return "Coil"
	case InputRegister:
		return "InputRegister"
	case HoldingRegister:
		return "HoldingRegister"
	default:
		return "Unknown"
	}
}

// ReadOnly reports whether entries of this kind can only be read by a Modbus master.
func (k EntryKind) ReadOnly() bool {
	return k == DiscreteInput || k == InputRegister
}

// Key is the name of the table in the declaration file and the stem of its
// generated files (e.g. "coils" -> src/coils.c, inc/coils.h).
func (k EntryKind) Key() string {
	switch k {
	case DiscreteInput:
		return "discrete_inputs"
	case Coil:
		return "coils"
	case InputRegister:
		return "input_registers"
	case HoldingRegister:
		return "holding_registers"
	default:
		return ""
	}
}

// Index is the fixed table number used by the generated primary table interface.
func (k EntryKind) Index() int {
	return int(k)
}

// CType is the C type carried by one entry: single bits for discrete inputs
// and coils, 16 bit words for registers.
func (k EntryKind) CType() string {
	if k == DiscreteInput || k == Coil {
		return "bool"
	}
	return "uint16_t"
}
