// Package normaliser reconciles noisy per-photo analysis records into a
// coherent batch before album export.
//
// Upstream analysis runs once per image, so the same physical work item
// arrives with different spellings, OCR mis-reads and partially missing
// fields across its photos. This package detects disagreement per field,
// aligns minority values to the batch majority when agreement clears a
// threshold, and repairs station formats and implausible temperature
// readings. Records whose text carries a numeric measurement are ground
// truth for that photo and are never correction targets.
//
// Everything here is pure and synchronous; the only mutation is
// ApplyCorrections, invoked explicitly by the caller on an approved
// correction list.
package normaliser
