package db

import (
	"context"
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestExportImport(t *testing.T) {
	defer func() { _ = testDB.Reset() }()
	c := qt.New(t)
	ctx := context.Background()

	coffee, err := testDB.AddCoffee(ctx, Document{"name": "Latte", "quantity": 2.0})
	c.Assert(err, qt.IsNil)
	user, err := testDB.AddUser(ctx, Document{"name": testUserName, "email": testUserEmail})
	c.Assert(err, qt.IsNil)

	data, err := testDB.Export(ctx)
	c.Assert(err, qt.IsNil)
	c.Assert(string(data), qt.Contains, coffee.InsertedID.Hex())

	// wipe everything and import the dump back
	c.Assert(testDB.Reset(), qt.IsNil)
	coffees, err := testDB.Coffees(ctx)
	c.Assert(err, qt.IsNil)
	c.Assert(coffees, qt.HasLen, 0)
	c.Assert(testDB.Import(ctx, data), qt.IsNil)

	stored, err := testDB.Coffee(ctx, coffee.InsertedID.Hex())
	c.Assert(err, qt.IsNil)
	c.Assert(stored["name"], qt.Equals, "Latte")
	c.Assert(stored["quantity"], qt.Equals, 2.0)
	storedUser, err := testDB.User(ctx, user.InsertedID.Hex())
	c.Assert(err, qt.IsNil)
	c.Assert(storedUser["email"], qt.Equals, testUserEmail)

	// importing twice doesn't duplicate documents
	c.Assert(testDB.Import(ctx, data), qt.IsNil)
	users, err := testDB.Users(ctx)
	c.Assert(err, qt.IsNil)
	c.Assert(users, qt.HasLen, 1)

	c.Assert(testDB.Import(ctx, []byte("not json")), qt.ErrorIs, ErrInvalidData)
}
