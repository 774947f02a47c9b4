package store

// Resource is a named entity collection exposed through the cache-key
// interface, e.g. "practices".
type Resource string

const (
	ResourceClients     Resource = "clients"
	ResourcePractices   Resource = "practices"
	ResourceLawyers     Resource = "lawyers"
	ResourceReminders   Resource = "reminders"
	ResourceDocuments   Resource = "documents"
	ResourceLetters     Resource = "letters"
	ResourceQuotes      Resource = "quotes"
	ResourceTimeEntries Resource = "time-entries"
	ResourceFirmProfile Resource = "firm-profile"
	ResourceProfiles    Resource = "profiles"
)

// fieldPair declares one application-side/storage-side field name pair.
// Single-word fields need no entry: both conventions spell them the same.
type fieldPair struct {
	app     string
	storage string
}

// filterSpec declares a query parameter a collection fetch honors. Filters
// are mutually exclusive: the first spec whose parameter is present wins.
type filterSpec struct {
	param  string
	column string
}

type resourceMeta struct {
	table     string
	fields    []fieldPair
	orderBy   string       // default ordering of collection fetches
	filters   []filterSpec // in precedence order
	singleton bool         // fixed-id single row, no collection form
	hidden    []string     // storage columns the fetcher never returns
}

// resources is the single declarative table driving key resolution, field
// mapping, default ordering and parameter filtering for every entity type.
var resources = map[Resource]resourceMeta{
	ResourceClients: {
		table: "clients",
		fields: []fieldPair{
			{"createdAt", "created_at"},
		},
	},
	ResourcePractices: {
		table: "practices",
		fields: []fieldPair{
			{"clientId", "client_id"},
			{"lawyerId", "lawyer_id"},
			{"paidAmount", "paid_amount"},
			{"openedAt", "opened_at"},
		},
		// The client-detail screen aggregates a client's practices through
		// this filter instead of scanning the full collection.
		filters: []filterSpec{
			{"clientId", "client_id"},
		},
	},
	ResourceLawyers: {
		table: "lawyers",
		fields: []fieldPair{
			{"firstName", "first_name"},
			{"lastName", "last_name"},
			{"photoUrl", "photo_url"},
			{"billingType", "billing_type"},
			{"billingRate", "billing_rate"},
		},
	},
	ResourceReminders: {
		table: "reminders",
		fields: []fieldPair{
			{"practiceId", "practice_id"},
			{"dueDate", "due_date"},
		},
		orderBy: "due_date ASC",
	},
	ResourceDocuments: {
		table: "documents",
		fields: []fieldPair{
			{"clientId", "client_id"},
			{"practiceId", "practice_id"},
			{"dataUrl", "data_url"},
			{"createdAt", "created_at"},
		},
		// Practice filter takes precedence when both are supplied.
		filters: []filterSpec{
			{"practiceId", "practice_id"},
			{"clientId", "client_id"},
		},
	},
	ResourceLetters: {
		table: "letters",
		fields: []fieldPair{
			{"clientId", "client_id"},
			{"createdAt", "created_at"},
		},
		// Append-mostly log: newest first.
		orderBy: "created_at DESC",
	},
	ResourceQuotes: {
		table: "quotes",
		fields: []fieldPair{
			{"clientId", "client_id"},
			{"practiceTitle", "practice_title"},
			{"practiceType", "practice_type"},
			{"practiceNotes", "practice_notes"},
			{"createdAt", "created_at"},
		},
		orderBy: "created_at DESC",
	},
	ResourceTimeEntries: {
		table: "time_entries",
		fields: []fieldPair{
			{"practiceId", "practice_id"},
		},
		// Time entries carry no client column, so only the practice
		// filter is declared.
		filters: []filterSpec{
			{"practiceId", "practice_id"},
		},
	},
	ResourceFirmProfile: {
		table: "firm_profiles",
		fields: []fieldPair{
			{"vatNumber", "vat_number"},
			{"logoUrl", "logo_url"},
		},
		singleton: true,
	},
	ResourceProfiles: {
		table:  "users",
		hidden: []string{"password"},
	},
}

// KnownResource reports whether the resource name is declared
func KnownResource(name string) bool {
	_, ok := resources[Resource(name)]
	return ok
}
