package ledger

import "github.com/warp/seller-core/record"

// EntryCodec adapts sales entries to the edit workflow: draft extraction,
// field edits, and validation into a patch. Satisfies workflow.Codec.
type EntryCodec struct{}

func (EntryCodec) Draft(e SalesEntry) EntryDraft {
	return DraftOf(e)
}

func (EntryCodec) Edit(d *EntryDraft, field, value string) error {
	return d.Set(field, value)
}

func (EntryCodec) Validate(d EntryDraft) (record.Patch[SalesEntry], record.FieldErrors) {
	v, errs := Validate(d)
	if errs != nil {
		return nil, errs
	}
	return PatchOf(v), nil
}
