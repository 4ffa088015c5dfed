package policy

import "blogicum/models"

// Owned is anything with a single owning user.
type Owned interface {
	OwnerID() uint
}

// CanMutate reports whether actor may edit or delete resource. Anonymous
// actors never can.
func CanMutate(actor *models.User, resource Owned) bool {
	if actor == nil || resource == nil {
		return false
	}
	return actor.ID != 0 && actor.ID == resource.OwnerID()
}
