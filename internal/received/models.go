package received

const (
	// CollectionName is the MongoDB collection holding received documents.
	CollectionName = "received"
	// ListLimit caps how many documents a listing returns.
	ListLimit = 100
	// CreatedAtField is the server-assigned insertion timestamp.
	CreatedAtField = "created_at"
	IDField        = "_id"
)

// Document is a received JSON object as stored: the caller's keys plus the
// server-assigned _id and created_at fields. No schema is enforced.
type Document map[string]interface{}

// Clone returns a shallow copy so callers can add fields without touching the payload.
func (d Document) Clone() Document {
	out := make(Document, len(d)+2)
	for k, v := range d {
		out[k] = v
	}
	return out
}
