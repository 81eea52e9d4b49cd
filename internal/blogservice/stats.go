package blogservice

type Favorite struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	Likes  int    `json:"likes"`
}

type AuthorBlogs struct {
	Author string `json:"author"`
	Blogs  int    `json:"blogs"`
}

type AuthorLikes struct {
	Author string `json:"author"`
	Likes  int    `json:"likes"`
}

// Stats is every aggregate over one snapshot of blogs. The pointer fields are
// nil for an empty snapshot.
type Stats struct {
	TotalLikes   int          `json:"total_likes"`
	FavoriteBlog *Favorite    `json:"favorite_blog"`
	MostBlogs    *AuthorBlogs `json:"most_blogs"`
	MostLikes    *AuthorLikes `json:"most_likes"`
}

func NewStats(blogs []Blog) *Stats {
	return &Stats{
		TotalLikes:   TotalLikes(blogs),
		FavoriteBlog: FavoriteBlog(blogs),
		MostBlogs:    MostBlogs(blogs),
		MostLikes:    MostLikes(blogs),
	}
}

func TotalLikes(blogs []Blog) int {
	total := 0
	for _, b := range blogs {
		total += b.Likes
	}
	return total
}

// FavoriteBlog returns the first blog with the highest likes.
func FavoriteBlog(blogs []Blog) *Favorite {
	if len(blogs) == 0 {
		return nil
	}

	fav := blogs[0]
	for _, b := range blogs[1:] {
		if b.Likes > fav.Likes {
			fav = b
		}
	}

	return &Favorite{Title: fav.Title, Author: fav.Author, Likes: fav.Likes}
}

func MostBlogs(blogs []Blog) *AuthorBlogs {
	author, n, ok := topAuthor(blogs, func(Blog) int { return 1 })
	if !ok {
		return nil
	}
	return &AuthorBlogs{Author: author, Blogs: n}
}

func MostLikes(blogs []Blog) *AuthorLikes {
	author, n, ok := topAuthor(blogs, func(b Blog) int { return b.Likes })
	if !ok {
		return nil
	}
	return &AuthorLikes{Author: author, Likes: n}
}

// topAuthor sums weight per author and returns the author with the largest
// sum. Ties go to the author that appeared first in blogs.
func topAuthor(blogs []Blog, weight func(Blog) int) (string, int, bool) {
	if len(blogs) == 0 {
		return "", 0, false
	}

	var order []string
	sums := make(map[string]int)
	for _, b := range blogs {
		if _, seen := sums[b.Author]; !seen {
			order = append(order, b.Author)
		}
		sums[b.Author] += weight(b)
	}

	best := order[0]
	for _, author := range order[1:] {
		if sums[author] > sums[best] {
			best = author
		}
	}

	return best, sums[best], true
}
