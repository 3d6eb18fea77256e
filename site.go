package site

import (
	"embed"
	"io/fs"
	"time"

	"github.com/juho05/log"
	"github.com/oklog/ulid/v2"
)

//go:embed ui/html
var htmlFS embed.FS

//go:embed ui/static
var staticFS embed.FS

//go:embed migrations/sqlite
var sqliteMigrationsFS embed.FS

//go:embed migrations/postgres
var postgresMigrationsFS embed.FS

var (
	HTMLFS               fs.FS
	StaticFS             fs.FS
	SQLiteMigrationsFS   fs.FS
	PostgresMigrationsFS fs.FS
)

var (
	StartTime = time.Now()
	// AssetVersion is appended to static asset URLs and changes on every start.
	AssetVersion = ulid.Make().String()
)

func init() {
	var err error
	HTMLFS, err = fs.Sub(htmlFS, "ui/html")
	if err != nil {
		log.Fatal(err)
	}
	StaticFS, err = fs.Sub(staticFS, "ui/static")
	if err != nil {
		log.Fatal(err)
	}
	SQLiteMigrationsFS, err = fs.Sub(sqliteMigrationsFS, "migrations/sqlite")
	if err != nil {
		log.Fatal(err)
	}
	PostgresMigrationsFS, err = fs.Sub(postgresMigrationsFS, "migrations/postgres")
	if err != nil {
		log.Fatal(err)
	}
}
