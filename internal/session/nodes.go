package session

import (
	"errors"
	"fmt"
	"strings"

	"seekbar/internal/api"
	"seekbar/internal/dom"
)

// BuildNode materializes a node spec, returning the root of the built
// subtree. A spec with tag "video" yields a genuine playable video node.
func BuildNode(doc *dom.Document, spec api.NodeSpec) (dom.Node, error) {
	if doc == nil {
		return nil, errors.New("build node: nil document")
	}
	tag := strings.TrimSpace(spec.Tag)
	if tag == "" {
		return nil, errors.New("node spec requires a tag")
	}

	var node dom.Node
	if tag == "video" {
		video := doc.CreateVideo()
		if spec.Video != nil {
			video.ApplyState(api.ToPlaybackState(*spec.Video))
		}
		node = video
	} else {
		node = doc.CreateElement(tag)
	}

	el := node.Elem()
	if spec.ID != "" {
		el.SetID(spec.ID)
	}
	for k, v := range spec.Dataset {
		el.SetDataset(k, v)
	}
	for k, v := range spec.Style {
		el.SetStyle(k, v)
	}
	if spec.Rect != nil {
		el.SetRect(api.ToRect(*spec.Rect))
	}
	for _, child := range spec.Children {
		built, err := BuildNode(doc, child)
		if err != nil {
			return nil, err
		}
		el.AppendChild(built)
	}
	return node, nil
}

// LoadPage replaces the document body contents with the given fragments and
// flushes mutations so the watcher reacts.
func (e *Env) LoadPage(specs []api.NodeSpec) error {
	body := e.Doc.Body()
	if body == nil {
		return errors.New("document has no body")
	}
	for _, child := range body.Children() {
		child.Elem().Remove()
	}
	for _, spec := range specs {
		node, err := BuildNode(e.Doc, spec)
		if err != nil {
			return err
		}
		body.AppendChild(node)
	}
	e.Doc.Flush()
	return nil
}

// InsertNode builds the node and appends it under the identified parent, or
// under the body when parentID is empty.
func (e *Env) InsertNode(parentID string, spec api.NodeSpec) error {
	parent := e.Doc.Body()
	if strings.TrimSpace(parentID) != "" {
		node := e.Doc.ByID(parentID)
		if node == nil {
			return fmt.Errorf("parent %q not found", parentID)
		}
		parent = node.Elem()
	}
	if parent == nil {
		return errors.New("document has no body")
	}
	built, err := BuildNode(e.Doc, spec)
	if err != nil {
		return err
	}
	parent.AppendChild(built)
	e.Doc.Flush()
	return nil
}

// RemoveNode detaches the identified node and flushes mutations.
func (e *Env) RemoveNode(id string) error {
	node := e.Doc.ByID(id)
	if node == nil {
		return fmt.Errorf("node %q not found", id)
	}
	node.Elem().Remove()
	e.Doc.Flush()
	return nil
}

// UpdateVideo applies remote playback state to the identified video without
// echoing it back through the playback sink.
func (e *Env) UpdateVideo(id string, state api.VideoState) error {
	node := e.Doc.ByID(id)
	if node == nil {
		return fmt.Errorf("video %q not found", id)
	}
	video, ok := node.(*dom.Video)
	if !ok {
		return fmt.Errorf("node %q is not a video", id)
	}
	video.ApplyState(api.ToPlaybackState(state))
	return nil
}

// SetFocus moves document focus to the identified element. An empty id
// clears focus.
func (e *Env) SetFocus(id string) error {
	if strings.TrimSpace(id) == "" {
		e.Doc.SetActiveElement(nil)
		return nil
	}
	node := e.Doc.ByID(id)
	if node == nil {
		return fmt.Errorf("node %q not found", id)
	}
	e.Doc.SetActiveElement(node.Elem())
	return nil
}

// SetViewport resizes the document viewport.
func (e *Env) SetViewport(w, h float64) {
	e.Doc.SetViewport(dom.Rect{W: w, H: h})
}
