package productRepo

import (
	"testing"

	"dreamdecol/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestEditUpdateLeavesRatingStats(t *testing.T) {
	p := &models.Product{
		ID:          primitive.NewObjectID(),
		Title:       "Oak Table",
		Price:       450000,
		Rating:      4.5,
		ReviewCount: 2,
		Warranty:    "2 years",
	}
	update, err := editUpdate(p)
	if err != nil {
		t.Fatal(err)
	}
	set, ok := update["$set"].(bson.M)
	if !ok {
		t.Fatalf("$set = %T", update["$set"])
	}
	for _, k := range []string{"_id", "rating", "reviewCount", "createdAt"} {
		if _, ok := set[k]; ok {
			t.Errorf("$set carries %q", k)
		}
	}
	if set["title"] != "Oak Table" || set["warranty"] != "2 years" {
		t.Errorf("$set = %v", set)
	}

	unset, ok := update["$unset"].(bson.M)
	if !ok {
		t.Fatalf("$unset = %T", update["$unset"])
	}
	if _, ok := unset["sku"]; !ok {
		t.Errorf("empty sku not unset: %v", unset)
	}
	if _, ok := unset["warranty"]; ok {
		t.Errorf("warranty unset while present")
	}
}
