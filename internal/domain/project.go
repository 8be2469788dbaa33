package domain

// Project is a provider project as listed by the projects command.
type Project struct {
	ID   string
	Key  string
	Name string
}
