package todom

import (
	"github.com/yaklabco/richtext/pkg/dom"
	"github.com/yaklabco/richtext/pkg/record"
)

// ZeroWidthNoBreakSpace is inserted in front of a collapsed caret that would
// otherwise be placed directly after an inline element, so the caret lands
// outside of it.
const ZeroWidthNoBreakSpace = "\ufeff"

// RangeSetter is the selection surface ApplySelection writes to.
type RangeSetter interface {
	RemoveAllRanges()
	AddRange(r dom.Range)
}

// Apply serializes value and reconciles it into current, then places the
// selection on target when the value tracks one.
func Apply(value record.Record, current *dom.Node, target RangeSetter, multilineTag string) {
	future, selection := ToDom(value, multilineTag)

	ApplyValue(future, current)

	if value.HasSelection() {
		ApplySelection(selection, current, target)
	}
}

// ApplyDocument applies value to the body of doc. Reconciliation and
// selection placement happen under the document lock.
func ApplyDocument(value record.Record, doc *dom.Document, multilineTag string) {
	doc.Update(func(body *dom.Node, selection *dom.Selection) {
		Apply(value, body, selection, multilineTag)
	})
}

// ApplyValue reconciles the children of current so that they match the
// children of future. Text nodes with equal data are kept in place; every
// other position receives the future node. future is consumed.
func ApplyValue(future, current *dom.Node) {
	currentChild := current.FirstChild

	for future.FirstChild != nil {
		futureChild := future.FirstChild

		if currentChild == nil {
			dom.AppendChild(current, futureChild)
			continue
		}

		next := currentChild.Next

		if futureChild.Kind != currentChild.Kind ||
			futureChild.Kind != dom.KindText ||
			futureChild.Data != currentChild.Data {
			dom.ReplaceChild(current, currentChild, futureChild)
		} else {
			dom.RemoveChild(future, futureChild)
		}

		currentChild = next
	}

	for currentChild != nil {
		next := currentChild.Next
		dom.RemoveChild(current, currentChild)
		currentChild = next
	}
}

// ApplySelection resolves selection against current and replaces the ranges
// of target with the resulting range. A selection without both paths leaves
// target untouched.
func ApplySelection(selection Selection, current *dom.Node, target RangeSetter) {
	if selection.StartPath == nil || selection.EndPath == nil {
		return
	}

	startContainer, startOffset := NodeByPath(current, selection.StartPath)
	endContainer, endOffset := NodeByPath(current, selection.EndPath)

	r := dom.Range{
		StartContainer: startContainer,
		StartOffset:    startOffset,
		EndContainer:   endContainer,
		EndOffset:      endOffset,
	}

	if r.Collapsed() && startOffset == 0 && startContainer.IsText() {
		if prev := startContainer.Prev; prev.IsElement() && !prev.IsVoid() {
			startContainer.InsertData(0, ZeroWidthNoBreakSpace)
			r.StartOffset = 1
			r.EndOffset = 1
		}
	}

	target.RemoveAllRanges()
	target.AddRange(r)
}
