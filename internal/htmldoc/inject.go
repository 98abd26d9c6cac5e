package htmldoc

import (
	"bytes"

	"git.home.luguber.info/inful/crumbtrail/internal/breadcrumb"
)

// InjectTrail renders the trail for currentPath into the container of page.
// Skip pages are returned byte-for-byte unchanged with written == false.
func InjectTrail(page []byte, containerID string, r *breadcrumb.Renderer, currentPath string) (out []byte, written bool, err error) {
	if r.Skip(currentPath) {
		return page, false, nil
	}
	doc, err := Parse(bytes.NewReader(page))
	if err != nil {
		return page, false, err
	}
	sink, err := doc.Sink(containerID)
	if err != nil {
		return page, false, err
	}
	if written, err = r.RenderTo(currentPath, sink); err != nil || !written {
		return page, false, err
	}
	out, err = doc.Bytes()
	if err != nil {
		return page, false, err
	}
	return out, true, nil
}
