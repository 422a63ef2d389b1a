package models

// PostsPerPage is the fixed page size of every post listing.
const PostsPerPage = 5

// PostPage is one page of posts ordered newest first.
type PostPage struct {
	Posts   []PostWithAuthor
	Page    int
	PerPage int
	Total   int
}

// Pages returns the number of pages needed for Total posts.
func (p *PostPage) Pages() int {
	if p.PerPage <= 0 || p.Total <= 0 {
		return 0
	}
	return (p.Total + p.PerPage - 1) / p.PerPage
}

func (p *PostPage) HasPrev() bool { return p.Page > 1 }

func (p *PostPage) HasNext() bool { return p.Page < p.Pages() }

func (p *PostPage) PrevNum() int { return p.Page - 1 }

func (p *PostPage) NextNum() int { return p.Page + 1 }

// IterPages returns the page numbers to link to. A zero marks a gap.
// One page is kept at each edge plus the current page with one neighbour on each side.
func (p *PostPage) IterPages() []int {
	const leftEdge, leftCurrent, rightCurrent, rightEdge = 1, 1, 2, 1

	pages := p.Pages()
	result := make([]int, 0, pages)
	last := 0
	for num := 1; num <= pages; num++ {
		if num <= leftEdge ||
			(num > p.Page-leftCurrent-1 && num < p.Page+rightCurrent) ||
			num > pages-rightEdge {
			if last+1 != num {
				result = append(result, 0)
			}
			result = append(result, num)
			last = num
		}
	}
	return result
}

// UserPostPage is a page of posts written by a single user.
// User is nil when the username does not exist.
type UserPostPage struct {
	User *UserDB
	PostPage
}
