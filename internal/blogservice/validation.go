package blogservice

import (
	"strings"

	"github.com/sushihentaime/bloglist/internal/common"
)

func validateBlog(v *common.Validator, title, url string) {
	v.Check(strings.TrimSpace(title) != "" && strings.TrimSpace(url) != "", "title", "title and url are required")
}

func validateLikes(v *common.Validator, likes *int) {
	v.Check(likes != nil, "likes", "likes must be provided")
	v.Check(likes == nil || *likes >= 0, "likes", "likes must not be negative")
}
