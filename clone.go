package anonym

// Cloner allows types to provide deep copy logic.
// Anonymizer works on a clone so the caller's value is never modified.
//
// For types with no pointers, slices or maps Clone can return the receiver:
//
//	func (u User) Clone() User { return u }
//
// Types holding slices or maps must copy them:
//
//	func (u User) Clone() User {
//	    aliases := make([]string, len(u.Aliases))
//	    copy(aliases, u.Aliases)
//	    return User{Email: u.Email, Aliases: aliases}
//	}
type Cloner[T any] interface {
	Clone() T
}
