package cli

import "fmt"

// MigrateCmd initializes the database and applies pending migrations.
type MigrateCmd struct{}

func (c *MigrateCmd) Run(ctx *Context) error {
	if err := ctx.Store.Init(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	fmt.Printf("Database ready at: %s\n", ctx.Store.GetConfigPath())
	return nil
}
