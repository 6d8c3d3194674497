package user

const (
	// constraint names from migrations/00001_create_users.sql
	ConstraintEmail    = "users_email_key"
	ConstraintNamePair = "users_name_lastname_key"

	columns = `id, uuid, name, lastname, email, password_hash, created_at, updated_at`

	SelectUsers = `
		SELECT ` + columns + `
		FROM users
		ORDER BY id
	`
	SelectUserByID = `
		SELECT ` + columns + `
		FROM users
		WHERE uuid = $1
	`
	SelectUserByEmail = `
		SELECT ` + columns + `
		FROM users
		WHERE email = $1
	`
	SelectUserByName = `
		SELECT ` + columns + `
		FROM users
		WHERE name = $1 AND lastname = $2
	`
	InsertUser = `
		INSERT INTO users (name, lastname, email, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + columns
	UpdateUserByUUID = `
		UPDATE users
		SET name = $1,
		    lastname = $2,
		    email = $3,
		    password_hash = $4,
		    updated_at = now()
		WHERE uuid = $5
		RETURNING ` + columns
	DeleteUserByUUID = `
		DELETE FROM users
		WHERE uuid = $1
		RETURNING ` + columns
)
