package api

import (
	"encoding/json"
	"net/http"
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/vocdoni/coffee-backend/errors"
)

// insertResponse, updateResponse and deleteResponse decode the
// acknowledgments written by the API.
type insertResponse struct {
	Acknowledged bool   `json:"acknowledged"`
	InsertedID   string `json:"insertedId"`
}

type updateResponse struct {
	Acknowledged  bool    `json:"acknowledged"`
	MatchedCount  int64   `json:"matchedCount"`
	ModifiedCount int64   `json:"modifiedCount"`
	UpsertedCount int64   `json:"upsertedCount"`
	UpsertedID    *string `json:"upsertedId"`
}

type deleteResponse struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deletedCount"`
}

const missingID = "65f1c0ffee0000000000beef"

func resetDB(c *qt.C) {
	if err := testDB.Reset(); err != nil {
		c.Logf("error resetting test database: %v", err)
	}
}

func TestCoffeeRoundTrip(t *testing.T) {
	c := qt.New(t)
	defer resetDB(c)

	// empty collection
	resp, code := testRequest(t, http.MethodGet, nil, coffeeEndpoint)
	c.Assert(code, qt.Equals, http.StatusOK)
	c.Assert(string(resp), qt.Equals, "[]\n")

	coffee := map[string]any{
		"name":     "Yirgacheffe",
		"quantity": "250g",
		"supplier": "Roastery",
		"taste":    "floral",
		"category": "filter",
		"details":  map[string]any{"origin": "Ethiopia"},
		"photo":    "http://localhost/storage/x.png",
		"extra":    true,
	}
	resp, code = testRequest(t, http.MethodPost, coffee, coffeeEndpoint)
	c.Assert(code, qt.Equals, http.StatusOK)
	inserted := insertResponse{}
	c.Assert(json.Unmarshal(resp, &inserted), qt.IsNil)
	c.Assert(inserted.Acknowledged, qt.IsTrue)
	c.Assert(inserted.InsertedID, qt.HasLen, 24)

	resp, code = testRequest(t, http.MethodGet, nil, "/coffee/"+inserted.InsertedID)
	c.Assert(code, qt.Equals, http.StatusOK)
	got := map[string]any{}
	c.Assert(json.Unmarshal(resp, &got), qt.IsNil)
	c.Assert(got["_id"], qt.Equals, inserted.InsertedID)
	delete(got, "_id")
	c.Assert(got, qt.DeepEquals, coffee)

	resp, code = testRequest(t, http.MethodGet, nil, coffeeEndpoint)
	c.Assert(code, qt.Equals, http.StatusOK)
	list := []map[string]any{}
	c.Assert(json.Unmarshal(resp, &list), qt.IsNil)
	c.Assert(list, qt.HasLen, 1)
	c.Assert(list[0]["_id"], qt.Equals, inserted.InsertedID)

	// a client _id is replaced by the generated one
	resp, code = testRequest(t, http.MethodPost, map[string]any{"_id": "mine"}, coffeeEndpoint)
	c.Assert(code, qt.Equals, http.StatusOK)
	c.Assert(json.Unmarshal(resp, &inserted), qt.IsNil)
	c.Assert(inserted.InsertedID, qt.Not(qt.Equals), "mine")

	// empty documents are accepted
	_, code = testRequest(t, http.MethodPost, "{}", coffeeEndpoint)
	c.Assert(code, qt.Equals, http.StatusOK)
}

func TestCoffeeInvalidRequests(t *testing.T) {
	c := qt.New(t)
	defer resetDB(c)

	for _, body := range []string{"invalid body", "[1,2]", `"espresso"`, ""} {
		resp, code := testRequest(t, http.MethodPost, body, coffeeEndpoint)
		c.Assert(code, qt.Equals, http.StatusBadRequest, qt.Commentf("body %q", body))
		res := struct {
			Code int `json:"code"`
		}{}
		c.Assert(json.Unmarshal(resp, &res), qt.IsNil)
		c.Assert(res.Code, qt.Equals, errors.ErrMalformedBody.Code)
	}

	// unknown id
	resp, code := testRequest(t, http.MethodGet, nil, "/coffee/"+missingID)
	c.Assert(code, qt.Equals, http.StatusOK)
	c.Assert(string(resp), qt.Equals, "null\n")

	// malformed ids are server errors with a fixed message
	resp, code = testRequest(t, http.MethodGet, nil, "/coffee/not-an-id")
	c.Assert(code, qt.Equals, http.StatusInternalServerError)
	c.Assert(string(resp), qt.Equals, string(mustMarshal(errors.ErrCoffeeFetchFailed))+"\n")

	resp, code = testRequest(t, http.MethodPut, map[string]any{"name": "x"}, "/coffee/not-an-id")
	c.Assert(code, qt.Equals, http.StatusInternalServerError)
	c.Assert(string(resp), qt.Equals, string(mustMarshal(errors.ErrCoffeeUpdateFailed))+"\n")

	resp, code = testRequest(t, http.MethodDelete, nil, "/coffee/not-an-id")
	c.Assert(code, qt.Equals, http.StatusInternalServerError)
	c.Assert(string(resp), qt.Equals, string(mustMarshal(errors.ErrCoffeeDeleteFailed))+"\n")
}

func TestSetCoffee(t *testing.T) {
	c := qt.New(t)
	defer resetDB(c)

	resp, code := testRequest(t, http.MethodPost, map[string]any{
		"name":     "Kenya AA",
		"quantity": "1kg",
		"taste":    "berry",
		"extra":    "kept",
	}, coffeeEndpoint)
	c.Assert(code, qt.Equals, http.StatusOK)
	inserted := insertResponse{}
	c.Assert(json.Unmarshal(resp, &inserted), qt.IsNil)

	// known fields missing from the body are removed, unknown ones ignored
	resp, code = testRequest(t, http.MethodPut, map[string]any{
		"name":    "Kenya AB",
		"unknown": "ignored",
	}, "/coffee/"+inserted.InsertedID)
	c.Assert(code, qt.Equals, http.StatusOK)
	updated := updateResponse{}
	c.Assert(json.Unmarshal(resp, &updated), qt.IsNil)
	c.Assert(updated, qt.DeepEquals, updateResponse{
		Acknowledged: true, MatchedCount: 1, ModifiedCount: 1,
	})

	resp, code = testRequest(t, http.MethodGet, nil, "/coffee/"+inserted.InsertedID)
	c.Assert(code, qt.Equals, http.StatusOK)
	got := map[string]any{}
	c.Assert(json.Unmarshal(resp, &got), qt.IsNil)
	c.Assert(got, qt.DeepEquals, map[string]any{
		"_id":   inserted.InsertedID,
		"name":  "Kenya AB",
		"extra": "kept",
	})

	// unknown ids are created
	resp, code = testRequest(t, http.MethodPut, map[string]any{"name": "New"}, "/coffee/"+missingID)
	c.Assert(code, qt.Equals, http.StatusOK)
	c.Assert(json.Unmarshal(resp, &updated), qt.IsNil)
	c.Assert(updated.UpsertedCount, qt.Equals, int64(1))
	c.Assert(updated.UpsertedID, qt.IsNotNil)
	c.Assert(*updated.UpsertedID, qt.Equals, missingID)
	resp, code = testRequest(t, http.MethodGet, nil, "/coffee/"+missingID)
	c.Assert(code, qt.Equals, http.StatusOK)
	c.Assert(json.Unmarshal(resp, &got), qt.IsNil)
	c.Assert(got["name"], qt.Equals, "New")
}

func TestUpdateCoffee(t *testing.T) {
	c := qt.New(t)
	defer resetDB(c)

	resp, code := testRequest(t, http.MethodPost, map[string]any{
		"name":     "Huila",
		"quantity": "500g",
		"supplier": "Finca",
	}, coffeeEndpoint)
	c.Assert(code, qt.Equals, http.StatusOK)
	inserted := insertResponse{}
	c.Assert(json.Unmarshal(resp, &inserted), qt.IsNil)

	// only the fields provided change
	resp, code = testRequest(t, http.MethodPatch, map[string]any{"quantity": "250g"}, "/coffee/"+inserted.InsertedID)
	c.Assert(code, qt.Equals, http.StatusOK)
	updated := updateResponse{}
	c.Assert(json.Unmarshal(resp, &updated), qt.IsNil)
	c.Assert(updated.MatchedCount, qt.Equals, int64(1))
	c.Assert(updated.ModifiedCount, qt.Equals, int64(1))

	resp, code = testRequest(t, http.MethodGet, nil, "/coffee/"+inserted.InsertedID)
	c.Assert(code, qt.Equals, http.StatusOK)
	got := map[string]any{}
	c.Assert(json.Unmarshal(resp, &got), qt.IsNil)
	c.Assert(got, qt.DeepEquals, map[string]any{
		"_id":      inserted.InsertedID,
		"name":     "Huila",
		"quantity": "250g",
		"supplier": "Finca",
	})

	// unknown ids are not created
	resp, code = testRequest(t, http.MethodPatch, map[string]any{"name": "Ghost"}, "/coffee/"+missingID)
	c.Assert(code, qt.Equals, http.StatusOK)
	c.Assert(json.Unmarshal(resp, &updated), qt.IsNil)
	c.Assert(updated, qt.DeepEquals, updateResponse{Acknowledged: true})
	resp, _ = testRequest(t, http.MethodGet, nil, "/coffee/"+missingID)
	c.Assert(string(resp), qt.Equals, "null\n")

	// a patch without known fields is rejected
	resp, code = testRequest(t, http.MethodPatch, map[string]any{"color": "brown"}, "/coffee/"+inserted.InsertedID)
	c.Assert(code, qt.Equals, http.StatusBadRequest)
	c.Assert(string(resp), qt.Equals, string(mustMarshal(errors.ErrEmptyUpdate))+"\n")
}

func TestDeleteCoffee(t *testing.T) {
	c := qt.New(t)
	defer resetDB(c)

	resp, code := testRequest(t, http.MethodPost, map[string]any{"name": "Sumatra"}, coffeeEndpoint)
	c.Assert(code, qt.Equals, http.StatusOK)
	inserted := insertResponse{}
	c.Assert(json.Unmarshal(resp, &inserted), qt.IsNil)

	resp, code = testRequest(t, http.MethodDelete, nil, "/coffee/"+inserted.InsertedID)
	c.Assert(code, qt.Equals, http.StatusOK)
	deleted := deleteResponse{}
	c.Assert(json.Unmarshal(resp, &deleted), qt.IsNil)
	c.Assert(deleted, qt.DeepEquals, deleteResponse{Acknowledged: true, DeletedCount: 1})

	// deleting again is not an error
	resp, code = testRequest(t, http.MethodDelete, nil, "/coffee/"+inserted.InsertedID)
	c.Assert(code, qt.Equals, http.StatusOK)
	c.Assert(json.Unmarshal(resp, &deleted), qt.IsNil)
	c.Assert(deleted, qt.DeepEquals, deleteResponse{Acknowledged: true, DeletedCount: 0})
}
