package app

import (
	"github.com/blogicum-app/blogicum-be/model"
)

// CanMutate reports whether viewer is the recorded author of an
// entity, which is what grants edit and delete rights on posts and
// comments alike. Anonymous viewers can never mutate; that is a plain
// false, not an error. Callers intercept a false before mutating and
// redirect to the entity's detail view instead of rendering a
// permission error.
func CanMutate(author, viewer *model.User) bool {
	return viewer != nil && author != nil && viewer.Username == author.Username
}
