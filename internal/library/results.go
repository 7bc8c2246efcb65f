package library

// AttachmentStatus is the terminal state of the two-phase attachment
// protocol. The store performs no multi-object transactions, so a registered
// record whose binary never arrived is a real, recoverable artifact — the
// three states must stay distinguishable.
type AttachmentStatus int

const (
	// AttachmentFailed means registration failed; no record exists and no
	// binary was ever sent.
	AttachmentFailed AttachmentStatus = iota
	// AttachmentRegistered means the record exists but the binary upload
	// failed. Key identifies the orphaned record for cleanup or retry.
	AttachmentRegistered
	// AttachmentUploaded means both phases succeeded.
	AttachmentUploaded
)

func (s AttachmentStatus) String() string {
	switch s {
	case AttachmentRegistered:
		return "registered"
	case AttachmentUploaded:
		return "uploaded"
	default:
		return "failed"
	}
}

// AttachmentOutcome reports one attachment operation. Err is nil only when
// Status is AttachmentUploaded.
type AttachmentOutcome struct {
	Status   AttachmentStatus
	Key      string
	Filename string
	Err      error
}

// SaveResult is the outcome of creating an item. A created item with a failed
// attachment is still a successful creation; the attachment outcome is nested
// rather than rolling back the item.
type SaveResult struct {
	Key        string
	ItemType   string
	Attachment *AttachmentOutcome
}

// UpdateResult reports an applied patch.
type UpdateResult struct {
	Key     string
	Version int
	Changed []string
}

// FulltextResult is the outcome of a fulltext resolution. Found=false with a
// nil error is a valid terminal state (nothing indexed yet); Note explains it.
type FulltextResult struct {
	Found         bool
	Content       string
	Note          string
	SourceKey     string
	IndexedExtent int
	TotalExtent   int
}

// TagUsage is one aggregated tag entry.
type TagUsage struct {
	Name  string
	Count int
}

// RecentItem is the most-recently-modified item projection used in stats.
type RecentItem struct {
	Key   string
	Title string
	Date  string
}

// Stats is the aggregated library summary.
type Stats struct {
	TotalItems      int
	CollectionCount int
	Collections     []string
	TopTags         []TagUsage
	MostRecent      *RecentItem
}
