package inspector

// Kind is the type-tag of a field. Kinds form an is-a chain through Parent,
// which the registry walks when looking up a customizer.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindBool
	KindNumeric
	KindInteger
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindUint8
	KindUint16
	KindUint32
	KindUint64
	KindFloat
	KindFloat32
	KindFloat64
	KindString
	KindName
	KindText
	KindEnum
	KindObjectRef
	KindClassRef
	KindSoftObjectRef
	KindSoftClassRef
	KindArray
	KindSet
	KindMap
	KindStruct

	kindCount
)

var kindNames = [kindCount]string{
	KindInvalid:       "Invalid",
	KindBool:          "Bool",
	KindNumeric:       "Numeric",
	KindInteger:       "Integer",
	KindInt8:          "Int8",
	KindInt16:         "Int16",
	KindInt32:         "Int32",
	KindInt64:         "Int64",
	KindUint8:         "Uint8",
	KindUint16:        "Uint16",
	KindUint32:        "Uint32",
	KindUint64:        "Uint64",
	KindFloat:         "Float",
	KindFloat32:       "Float32",
	KindFloat64:       "Float64",
	KindString:        "String",
	KindName:          "Name",
	KindText:          "Text",
	KindEnum:          "Enum",
	KindObjectRef:     "ObjectRef",
	KindClassRef:      "ClassRef",
	KindSoftObjectRef: "SoftObjectRef",
	KindSoftClassRef:  "SoftClassRef",
	KindArray:         "Array",
	KindSet:           "Set",
	KindMap:           "Map",
	KindStruct:        "Struct",
}

var kindParents = [kindCount]Kind{
	KindInteger:      KindNumeric,
	KindInt8:         KindInteger,
	KindInt16:        KindInteger,
	KindInt32:        KindInteger,
	KindInt64:        KindInteger,
	KindUint8:        KindInteger,
	KindUint16:       KindInteger,
	KindUint32:       KindInteger,
	KindUint64:       KindInteger,
	KindFloat:        KindNumeric,
	KindFloat32:      KindFloat,
	KindFloat64:      KindFloat,
	KindClassRef:     KindObjectRef,
	KindSoftClassRef: KindSoftObjectRef,
}

func (k Kind) String() string {
	if k >= kindCount {
		return "Invalid"
	}
	return kindNames[k]
}

// Parent returns the next more generic kind, or KindInvalid at the root.
func (k Kind) Parent() Kind {
	if k >= kindCount {
		return KindInvalid
	}
	return kindParents[k]
}

// IsA reports whether k equals base or derives from it.
func (k Kind) IsA(base Kind) bool {
	for c := k; c != KindInvalid; c = c.Parent() {
		if c == base {
			return true
		}
	}
	return false
}

func (k Kind) IsInteger() bool { return k.IsA(KindInteger) }

func (k Kind) IsFloat() bool { return k.IsA(KindFloat) }

func (k Kind) IsNumeric() bool { return k.IsA(KindNumeric) }

// IsContainer reports whether the kind holds a variable number of elements.
func (k Kind) IsContainer() bool {
	return k == KindArray || k == KindSet || k == KindMap
}

// IsReference reports whether the kind is one of the four reference kinds.
func (k Kind) IsReference() bool {
	return k.IsA(KindObjectRef) || k.IsA(KindSoftObjectRef)
}
