package core

// Entity is a unique identifier for an entity
// Zero is reserved for "no entity"
type Entity uint64

// NoEntity is the null entity
const NoEntity Entity = 0
