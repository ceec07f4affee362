package imgui

// Style defines the visual appearance of UI elements.
type Style struct {
	TextColor         uint32
	TextDisabledColor uint32

	ButtonColor        uint32
	ButtonHoveredColor uint32
	ButtonActiveColor  uint32

	SelectedBgColor uint32
	HoveredBgColor  uint32

	InputBgColor        uint32
	InputFocusedBgColor uint32
	InputBorderColor    uint32

	BorderColor   uint32 // Table row separators
	RowBgAltColor uint32

	DropdownBgColor uint32
	ComboArrowColor uint32
	TooltipBgColor  uint32
	CheckMarkColor  uint32

	FontScale     float32
	ItemSpacing   float32 // Gap between items
	FramePadding  float32 // Inner padding of buttons and inputs
	IndentSpacing float32 // Tree node indent per level
	NameColumn    float32 // Fraction of a table's width given to column 0
	MaxPopupItems int     // Rows shown in a combo or menu before clipping
}

// DefaultStyle returns a dark style. Hover and active shades are blended
// from the base colors.
func DefaultStyle() Style {
	button := RGBA(50, 50, 50, 255)
	accent := RGBA(50, 100, 150, 255)
	return Style{
		TextColor:         ColorWhite,
		TextDisabledColor: ColorGray,

		ButtonColor:        button,
		ButtonHoveredColor: Blend(button, accent, 0.35),
		ButtonActiveColor:  Blend(button, accent, 0.7),

		SelectedBgColor: accent,
		HoveredBgColor:  RGBA(60, 60, 60, 255),

		InputBgColor:        RGBA(30, 30, 30, 255),
		InputFocusedBgColor: RGBA(40, 40, 50, 255),
		InputBorderColor:    RGBA(100, 100, 100, 255),

		BorderColor:   RGBA(60, 60, 60, 255),
		RowBgAltColor: RGBA(35, 35, 35, 120),

		DropdownBgColor: RGBA(25, 25, 25, 250),
		ComboArrowColor: RGBA(180, 180, 180, 255),
		TooltipBgColor:  RGBA(15, 15, 15, 240),
		CheckMarkColor:  Blend(accent, ColorWhite, 0.4),

		FontScale:     1.0,
		ItemSpacing:   4,
		FramePadding:  3,
		IndentSpacing: 14,
		NameColumn:    0.4,
		MaxPopupItems: 12,
	}
}

// GTAStyle returns a dark theme with cyan and yellow accents.
func GTAStyle() Style {
	s := DefaultStyle()
	cyan := RGBA(0, 150, 200, 255)
	s.TextDisabledColor = RGBA(128, 128, 128, 255)
	s.ButtonColor = RGBA(40, 40, 40, 255)
	s.ButtonHoveredColor = Blend(s.ButtonColor, cyan, 0.3)
	s.ButtonActiveColor = cyan
	s.SelectedBgColor = RGBA(0, 120, 180, 255)
	s.HoveredBgColor = RGBA(50, 70, 90, 255)
	s.InputBgColor = RGBA(20, 20, 20, 255)
	s.InputFocusedBgColor = RGBA(30, 40, 50, 255)
	s.InputBorderColor = cyan
	s.BorderColor = RGBA(0, 100, 150, 255)
	s.RowBgAltColor = RGBA(20, 30, 40, 160)
	s.DropdownBgColor = RGBA(10, 10, 10, 250)
	s.ComboArrowColor = RGBA(0, 180, 230, 255)
	s.CheckMarkColor = RGBA(255, 200, 0, 255)
	s.ItemSpacing = 6
	s.FramePadding = 4
	return s
}
