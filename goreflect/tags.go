package goreflect

import (
	"strings"

	"github.com/go-theft-auto/inspector"
)

// TagKey is the struct tag read by the provider.
//
//	Speed  float64          `inspect:"edit,tooltip=Top speed in km/h"`
//	Engine *Engine          `inspect:"edit,instanced,class=Engine"`
//	Owner  *inspector.Type  `inspect:"edit,class=Driver"`
//	Debug  string           `inspect:"edit,hidden"`
//	Mode   uint8            `inspect:"edit,enum=Gear"`
//
// tooltip must come last; everything after "tooltip=" is the tooltip text.
const TagKey = "inspect"

type fieldTag struct {
	flags   inspector.FieldFlags
	tooltip string
	class   string
	name    string
	enum    string
}

func parseTag(tag string) fieldTag {
	var out fieldTag
	for tag != "" {
		var part string
		if strings.HasPrefix(tag, "tooltip=") {
			out.tooltip = strings.TrimPrefix(tag, "tooltip=")
			break
		}
		part, tag, _ = strings.Cut(tag, ",")
		part = strings.TrimSpace(part)
		key, val, _ := strings.Cut(part, "=")
		switch key {
		case "edit":
			out.flags |= inspector.FlagEdit
		case "readonly":
			out.flags |= inspector.FlagEdit | inspector.FlagReadOnly
		case "hidden":
			out.flags |= inspector.FlagHidden
		case "instanced":
			out.flags |= inspector.FlagInstanced
		case "class":
			out.class = val
		case "name":
			out.name = val
		case "enum":
			out.enum = val
		}
		tag = strings.TrimLeft(tag, " ")
	}
	return out
}
