package domain

// Domain contains the flat record types moved between fetchers, the
// cleaning pipeline and the exporters.

// Article is one GDELT artlist entry. Fields mirror the API response;
// records are flat and identified by URL only.
type Article struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	SeenDate    string `json:"seendate"`
	Domain      string `json:"domain"`
	Snippet     string `json:"snippet,omitempty"`
	Language    string `json:"language"`
	SourceCntry string `json:"sourcecountry,omitempty"`
	SocialImage string `json:"socialimage,omitempty"`
}

// Key returns the deduplication key for an article.
func (a Article) Key() string { return a.URL }

// Post is one CryptoPanic posts entry. Identified by ID.
type Post struct {
	ID            int64      `json:"id"`
	Kind          string     `json:"kind,omitempty"`
	Title         string     `json:"title"`
	URL           string     `json:"url"`
	PublishedAt   string     `json:"published_at,omitempty"`
	CreatedAt     string     `json:"created_at,omitempty"`
	Source        PostSource `json:"source"`
	Votes         PostVotes  `json:"votes"`
	CommentsCount int        `json:"comments_count,omitempty"`
	Currencies    []Currency `json:"currencies,omitempty"`
}

// PostSource identifies the outlet a post came from.
type PostSource struct {
	Title  string `json:"title"`
	Domain string `json:"domain,omitempty"`
}

// PostVotes carries the community vote counts attached to a post.
type PostVotes struct {
	Positive  int `json:"positive"`
	Negative  int `json:"negative"`
	Important int `json:"important,omitempty"`
	Liked     int `json:"liked,omitempty"`
	Disliked  int `json:"disliked,omitempty"`
}

// Currency is a coin tag attached to a post.
type Currency struct {
	Code  string `json:"code"`
	Title string `json:"title,omitempty"`
}

// Timestamp returns the best available timestamp string for a post,
// preferring published_at over created_at.
func (p Post) Timestamp() string {
	if p.PublishedAt != "" {
		return p.PublishedAt
	}
	return p.CreatedAt
}
