package entity

type Genre struct {
	ID   int64  `db:"id"`
	Name string `db:"name"`
}

type Actor struct {
	ID        int64  `db:"id"`
	FirstName string `db:"first_name"`
	LastName  string `db:"last_name"`
}

func (a Actor) FullName() string {
	return a.FirstName + " " + a.LastName
}

type Play struct {
	ID          int64  `db:"id"`
	Title       string `db:"title"`
	Description string `db:"description"`
}
