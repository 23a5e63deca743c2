package gen

import (
	"archive/zip"
	"bytes"
	"fmt"
)

// BundleMsgFiles packages every message's and enum's companion .msg
// text into a zip archive, one entry per type at
// <packagePath>/msg/<ShortName>.msg. No third-party archive library
// appears anywhere in the example pack's dependency surface, so this is
// the one component in this package built directly on the standard
// library.
func BundleMsgFiles(s *Schema, packagePath string) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for _, m := range s.Messages {
		name := fmt.Sprintf("%s/msg/%s.msg", packagePath, m.ROSShortName)
		w, err := zw.Create(name)
		if err != nil {
			return nil, err
		}
		if _, err := w.Write([]byte(MessageText(s, m))); err != nil {
			return nil, err
		}
	}
	for _, e := range s.Enums {
		name := fmt.Sprintf("%s/msg/%s.msg", packagePath, e.GoName)
		w, err := zw.Create(name)
		if err != nil {
			return nil, err
		}
		if _, err := w.Write([]byte(EnumText(e))); err != nil {
			return nil, err
		}
	}

	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
