package index

// Zephyrgram is one ingested message (spec §3's "Zephyrgram" log
// record). The core does not care about its wire encoding, only this
// in-memory shape (spec §6).
type Zephyrgram struct {
	Id            ZgramId
	TimeSecs      int64
	LocationInLog int64
	Sender        string
	Signature     string
	Instance      string
	Body          string
}

// MetadataRecord is the typed variant of metadata log records (spec §3,
// §4.3).
type MetadataRecord interface {
	isMetadataRecord()
}

// ReactionRecord toggles a (reaction, creator) pair on a zgram.
type ReactionRecord struct {
	Id       ZgramId
	Reaction string
	Creator  string
	Bit      bool
}

// ZgramRevisionRecord appends a new body revision to a zgram.
type ZgramRevisionRecord struct {
	Id   ZgramId
	Core string
}

// ZgramRefersToRecord inserts/overwrites a cross-reference bit.
type ZgramRefersToRecord struct {
	Id     ZgramId
	Target ZgramId
	Bit    bool
}

// ZmojisRecord inserts/overwrites a user's zmojis string.
type ZmojisRecord struct {
	User   string
	Zmojis string
}

func (ReactionRecord) isMetadataRecord()      {}
func (ZgramRevisionRecord) isMetadataRecord() {}
func (ZgramRefersToRecord) isMetadataRecord() {}
func (ZmojisRecord) isMetadataRecord()        {}
