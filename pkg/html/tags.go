package html

// voidTags are elements that cannot have content and have no closing tag.
var voidTags = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"param":  true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

// IsVoidTag reports whether tag is a void element.
func IsVoidTag(tag string) bool {
	return voidTags[tag]
}

// phrasingTags are the phrasing content elements. Their children are joined
// without a separator.
var phrasingTags = map[string]bool{
	"a":        true,
	"abbr":     true,
	"audio":    true,
	"b":        true,
	"bdi":      true,
	"bdo":      true,
	"br":       true,
	"button":   true,
	"canvas":   true,
	"cite":     true,
	"code":     true,
	"data":     true,
	"datalist": true,
	"del":      true,
	"dfn":      true,
	"em":       true,
	"embed":    true,
	"i":        true,
	"iframe":   true,
	"img":      true,
	"input":    true,
	"ins":      true,
	"kbd":      true,
	"label":    true,
	"map":      true,
	"mark":     true,
	"math":     true,
	"meter":    true,
	"noscript": true,
	"object":   true,
	"output":   true,
	"picture":  true,
	"progress": true,
	"q":        true,
	"ruby":     true,
	"s":        true,
	"samp":     true,
	"script":   true,
	"select":   true,
	"slot":     true,
	"small":    true,
	"span":     true,
	"strong":   true,
	"sub":      true,
	"sup":      true,
	"svg":      true,
	"template": true,
	"textarea": true,
	"time":     true,
	"u":        true,
	"var":      true,
	"video":    true,
	"wbr":      true,
}

// IsPhrasingTag reports whether tag is phrasing content.
func IsPhrasingTag(tag string) bool {
	return phrasingTags[tag]
}
