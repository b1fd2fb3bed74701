package opf

// ParseDisplayOptions parses a legacy iBooks/Kobo display options sidecar
// (e.g. META-INF/com.apple.ibooks.display-options.xml) into a flat
// option-name → value map suitable for MetadataOptions.DisplayOptions.
//
//	<display_options>
//	  <platform name="*">
//	    <option name="fixed-layout">true</option>
//	  </platform>
//	</display_options>
//
// Options are flattened across platforms in document order; the first
// declaration of a name wins. Returns nil when the data is not a display
// options document.
func ParseDisplayOptions(data []byte) map[string]string {
	root, err := decodeElement(data)
	if err != nil || root.XMLName.Local != "display_options" {
		return nil
	}

	var out map[string]string
	for _, platform := range root.Children {
		if platform.XMLName.Local != "platform" {
			continue
		}
		for _, option := range platform.Children {
			if option.XMLName.Local != "option" {
				continue
			}
			name := option.Attr("name")
			if name == "" {
				continue
			}
			if out == nil {
				out = make(map[string]string)
			}
			if _, exists := out[name]; !exists {
				out[name] = option.Text()
			}
		}
	}
	return out
}
