package schema

var (
	// bucket
	EventJournalBucket = "event-journal-bucket" // key: nonce+"-"+eventId, val: json.marshal(event)
	ConstantsBucket    = "constants-bucket"
)
