// Package canon defines the canonical book registry: stable book IDs,
// display names, corpus groups, canonical ordering, and the alias table
// that maps alternate spellings and abbreviations onto book IDs.
package canon

// Group is a top-level partition of the corpus.
type Group string

// Corpus groups.
const (
	GroupCanon          Group = "canon"
	GroupApocrypha      Group = "apocrypha"
	GroupPseudepigrapha Group = "pseudepigrapha"
)

// validGroups is the set of recognized groups.
var validGroups = map[Group]bool{
	GroupCanon:          true,
	GroupApocrypha:      true,
	GroupPseudepigrapha: true,
}

// IsValid returns true if the group is recognized.
func (g Group) IsValid() bool {
	return validGroups[g]
}

// Book describes one book of the registry. The registry carries metadata
// only; verse text lives in the corpus store.
type Book struct {
	// ID is the stable slug used everywhere else in the engine (e.g. "genesis", "1john").
	ID string

	// Name is the human-readable display name (e.g. "Genesis", "1 John").
	Name string

	// Group is the corpus partition this book belongs to.
	Group Group

	// Order defines canonical ordering across the whole registry (1-indexed).
	Order int

	// Aliases are alternate spellings and abbreviations, lowercase.
	// The ID and lowercased Name resolve without appearing here.
	Aliases []string
}

// Books returns the full registry in canonical order. The returned slice
// is a copy; callers may not mutate registry state through it.
func Books() []Book {
	out := make([]Book, len(registry))
	copy(out, registry)
	return out
}

// ByID returns the registry entry for a book ID.
func ByID(id string) (Book, bool) {
	for _, b := range registry {
		if b.ID == id {
			return b, true
		}
	}
	return Book{}, false
}

// registry is the canonical book table. Order values are contiguous and
// define Bible ordering; apocrypha and pseudepigrapha follow the canon.
var registry = []Book{
	// Torah / Pentateuch
	{ID: "genesis", Name: "Genesis", Group: GroupCanon, Order: 1, Aliases: []string{"gen", "ge", "gn"}},
	{ID: "exodus", Name: "Exodus", Group: GroupCanon, Order: 2, Aliases: []string{"exod", "exo", "ex"}},
	{ID: "leviticus", Name: "Leviticus", Group: GroupCanon, Order: 3, Aliases: []string{"lev", "le", "lv"}},
	{ID: "numbers", Name: "Numbers", Group: GroupCanon, Order: 4, Aliases: []string{"num", "nu", "nm"}},
	{ID: "deuteronomy", Name: "Deuteronomy", Group: GroupCanon, Order: 5, Aliases: []string{"deut", "deu", "dt"}},

	// History
	{ID: "joshua", Name: "Joshua", Group: GroupCanon, Order: 6, Aliases: []string{"josh", "jos"}},
	{ID: "judges", Name: "Judges", Group: GroupCanon, Order: 7, Aliases: []string{"judg", "jdg", "jgs"}},
	{ID: "ruth", Name: "Ruth", Group: GroupCanon, Order: 8, Aliases: []string{"rth", "ru"}},
	{ID: "1samuel", Name: "1 Samuel", Group: GroupCanon, Order: 9, Aliases: []string{"1sam", "1 sam", "1sa", "i samuel"}},
	{ID: "2samuel", Name: "2 Samuel", Group: GroupCanon, Order: 10, Aliases: []string{"2sam", "2 sam", "2sa", "ii samuel"}},
	{ID: "1kings", Name: "1 Kings", Group: GroupCanon, Order: 11, Aliases: []string{"1kgs", "1 kgs", "1ki", "i kings"}},
	{ID: "2kings", Name: "2 Kings", Group: GroupCanon, Order: 12, Aliases: []string{"2kgs", "2 kgs", "2ki", "ii kings"}},
	{ID: "1chronicles", Name: "1 Chronicles", Group: GroupCanon, Order: 13, Aliases: []string{"1chr", "1 chr", "1ch", "i chronicles"}},
	{ID: "2chronicles", Name: "2 Chronicles", Group: GroupCanon, Order: 14, Aliases: []string{"2chr", "2 chr", "2ch", "ii chronicles"}},
	{ID: "ezra", Name: "Ezra", Group: GroupCanon, Order: 15, Aliases: []string{"ezr"}},
	{ID: "nehemiah", Name: "Nehemiah", Group: GroupCanon, Order: 16, Aliases: []string{"neh", "ne"}},
	{ID: "esther", Name: "Esther", Group: GroupCanon, Order: 17, Aliases: []string{"esth", "est", "es"}},

	// Wisdom / Poetry
	{ID: "job", Name: "Job", Group: GroupCanon, Order: 18, Aliases: []string{"jb"}},
	{ID: "psalm", Name: "Psalms", Group: GroupCanon, Order: 19, Aliases: []string{"ps", "pss", "psa", "psalms"}},
	{ID: "proverbs", Name: "Proverbs", Group: GroupCanon, Order: 20, Aliases: []string{"prov", "pro", "prv"}},
	{ID: "ecclesiastes", Name: "Ecclesiastes", Group: GroupCanon, Order: 21, Aliases: []string{"eccl", "ecc", "qoh", "qoheleth"}},
	{ID: "songofsolomon", Name: "Song of Solomon", Group: GroupCanon, Order: 22, Aliases: []string{"song", "sos", "song of songs", "canticles"}},

	// Major prophets
	{ID: "isaiah", Name: "Isaiah", Group: GroupCanon, Order: 23, Aliases: []string{"isa", "is"}},
	{ID: "jeremiah", Name: "Jeremiah", Group: GroupCanon, Order: 24, Aliases: []string{"jer", "je"}},
	{ID: "lamentations", Name: "Lamentations", Group: GroupCanon, Order: 25, Aliases: []string{"lam", "la"}},
	{ID: "ezekiel", Name: "Ezekiel", Group: GroupCanon, Order: 26, Aliases: []string{"ezek", "eze", "ezk"}},
	{ID: "daniel", Name: "Daniel", Group: GroupCanon, Order: 27, Aliases: []string{"dan", "da", "dn"}},

	// Minor prophets
	{ID: "hosea", Name: "Hosea", Group: GroupCanon, Order: 28, Aliases: []string{"hos", "ho"}},
	{ID: "joel", Name: "Joel", Group: GroupCanon, Order: 29, Aliases: []string{"jl"}},
	{ID: "amos", Name: "Amos", Group: GroupCanon, Order: 30, Aliases: []string{"am"}},
	{ID: "obadiah", Name: "Obadiah", Group: GroupCanon, Order: 31, Aliases: []string{"obad", "oba", "ob"}},
	{ID: "jonah", Name: "Jonah", Group: GroupCanon, Order: 32, Aliases: []string{"jon", "jnh"}},
	{ID: "micah", Name: "Micah", Group: GroupCanon, Order: 33, Aliases: []string{"mic", "mi"}},
	{ID: "nahum", Name: "Nahum", Group: GroupCanon, Order: 34, Aliases: []string{"nah", "na"}},
	{ID: "habakkuk", Name: "Habakkuk", Group: GroupCanon, Order: 35, Aliases: []string{"hab", "hb"}},
	{ID: "zephaniah", Name: "Zephaniah", Group: GroupCanon, Order: 36, Aliases: []string{"zeph", "zep"}},
	{ID: "haggai", Name: "Haggai", Group: GroupCanon, Order: 37, Aliases: []string{"hag", "hg"}},
	{ID: "zechariah", Name: "Zechariah", Group: GroupCanon, Order: 38, Aliases: []string{"zech", "zec"}},
	{ID: "malachi", Name: "Malachi", Group: GroupCanon, Order: 39, Aliases: []string{"mal"}},

	// Gospels and Acts
	{ID: "matthew", Name: "Matthew", Group: GroupCanon, Order: 40, Aliases: []string{"matt", "mat", "mt"}},
	{ID: "mark", Name: "Mark", Group: GroupCanon, Order: 41, Aliases: []string{"mrk", "mk"}},
	{ID: "luke", Name: "Luke", Group: GroupCanon, Order: 42, Aliases: []string{"luk", "lk"}},
	{ID: "john", Name: "John", Group: GroupCanon, Order: 43, Aliases: []string{"jhn", "jn"}},
	{ID: "acts", Name: "Acts", Group: GroupCanon, Order: 44, Aliases: []string{"act", "ac"}},

	// Epistles
	{ID: "romans", Name: "Romans", Group: GroupCanon, Order: 45, Aliases: []string{"rom", "ro", "rm"}},
	{ID: "1corinthians", Name: "1 Corinthians", Group: GroupCanon, Order: 46, Aliases: []string{"1cor", "1 cor", "1co", "i corinthians"}},
	{ID: "2corinthians", Name: "2 Corinthians", Group: GroupCanon, Order: 47, Aliases: []string{"2cor", "2 cor", "2co", "ii corinthians"}},
	{ID: "galatians", Name: "Galatians", Group: GroupCanon, Order: 48, Aliases: []string{"gal", "ga"}},
	{ID: "ephesians", Name: "Ephesians", Group: GroupCanon, Order: 49, Aliases: []string{"eph"}},
	{ID: "philippians", Name: "Philippians", Group: GroupCanon, Order: 50, Aliases: []string{"phil", "php"}},
	{ID: "colossians", Name: "Colossians", Group: GroupCanon, Order: 51, Aliases: []string{"col"}},
	{ID: "1thessalonians", Name: "1 Thessalonians", Group: GroupCanon, Order: 52, Aliases: []string{"1thess", "1 thess", "1th", "i thessalonians"}},
	{ID: "2thessalonians", Name: "2 Thessalonians", Group: GroupCanon, Order: 53, Aliases: []string{"2thess", "2 thess", "2th", "ii thessalonians"}},
	{ID: "1timothy", Name: "1 Timothy", Group: GroupCanon, Order: 54, Aliases: []string{"1tim", "1 tim", "1ti", "i timothy"}},
	{ID: "2timothy", Name: "2 Timothy", Group: GroupCanon, Order: 55, Aliases: []string{"2tim", "2 tim", "2ti", "ii timothy"}},
	{ID: "titus", Name: "Titus", Group: GroupCanon, Order: 56, Aliases: []string{"tit", "ti"}},
	{ID: "philemon", Name: "Philemon", Group: GroupCanon, Order: 57, Aliases: []string{"phlm", "phm"}},
	{ID: "hebrews", Name: "Hebrews", Group: GroupCanon, Order: 58, Aliases: []string{"heb"}},
	{ID: "james", Name: "James", Group: GroupCanon, Order: 59, Aliases: []string{"jas", "jm"}},
	{ID: "1peter", Name: "1 Peter", Group: GroupCanon, Order: 60, Aliases: []string{"1pet", "1 pet", "1pe", "i peter"}},
	{ID: "2peter", Name: "2 Peter", Group: GroupCanon, Order: 61, Aliases: []string{"2pet", "2 pet", "2pe", "ii peter"}},
	{ID: "1john", Name: "1 John", Group: GroupCanon, Order: 62, Aliases: []string{"1jn", "1 jn", "1jo", "i john"}},
	{ID: "2john", Name: "2 John", Group: GroupCanon, Order: 63, Aliases: []string{"2jn", "2 jn", "2jo", "ii john"}},
	{ID: "3john", Name: "3 John", Group: GroupCanon, Order: 64, Aliases: []string{"3jn", "3 jn", "3jo", "iii john"}},
	{ID: "jude", Name: "Jude", Group: GroupCanon, Order: 65, Aliases: []string{"jud"}},
	{ID: "revelation", Name: "Revelation", Group: GroupCanon, Order: 66, Aliases: []string{"rev", "re", "apocalypse"}},

	// Apocrypha / deuterocanon
	{ID: "tobit", Name: "Tobit", Group: GroupApocrypha, Order: 67, Aliases: []string{"tob", "tb"}},
	{ID: "judith", Name: "Judith", Group: GroupApocrypha, Order: 68, Aliases: []string{"jdt"}},
	{ID: "wisdom", Name: "Wisdom of Solomon", Group: GroupApocrypha, Order: 69, Aliases: []string{"wis", "wisd", "wisdom of solomon"}},
	{ID: "sirach", Name: "Sirach", Group: GroupApocrypha, Order: 70, Aliases: []string{"sir", "ecclesiasticus"}},
	{ID: "baruch", Name: "Baruch", Group: GroupApocrypha, Order: 71, Aliases: []string{"bar"}},
	{ID: "1maccabees", Name: "1 Maccabees", Group: GroupApocrypha, Order: 72, Aliases: []string{"1macc", "1 macc", "1ma", "i maccabees"}},
	{ID: "2maccabees", Name: "2 Maccabees", Group: GroupApocrypha, Order: 73, Aliases: []string{"2macc", "2 macc", "2ma", "ii maccabees"}},
	{ID: "1esdras", Name: "1 Esdras", Group: GroupApocrypha, Order: 74, Aliases: []string{"1esd", "1 esd", "i esdras"}},
	{ID: "2esdras", Name: "2 Esdras", Group: GroupApocrypha, Order: 75, Aliases: []string{"2esd", "2 esd", "ii esdras"}},

	// Pseudepigrapha
	{ID: "enoch", Name: "Enoch", Group: GroupPseudepigrapha, Order: 76, Aliases: []string{"1enoch", "1 enoch", "hanok"}},
	{ID: "jubilees", Name: "Jubilees", Group: GroupPseudepigrapha, Order: 77, Aliases: []string{"jub"}},
	{ID: "jasher", Name: "Jasher", Group: GroupPseudepigrapha, Order: 78, Aliases: []string{"jsr", "yashar"}},
}
