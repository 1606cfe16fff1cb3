package utils

import (
	"net/url"
	"reflect"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestBuildProductQuery_Defaults(t *testing.T) {
	q := BuildProductQuery(url.Values{})

	if !reflect.DeepEqual(q.Filter, bson.M{}) {
		t.Errorf("filter = %v, want empty", q.Filter)
	}
	if q.Limit != 10 {
		t.Errorf("limit = %d, want 10", q.Limit)
	}
	if q.Skip != 0 {
		t.Errorf("skip = %d, want 0", q.Skip)
	}
}

func TestBuildProductQuery_Search(t *testing.T) {
	q := BuildProductQuery(url.Values{"search": {"sedan"}})

	want := bson.M{"$or": []bson.M{
		{"name": primitive.Regex{Pattern: "sedan", Options: "i"}},
		{"description": primitive.Regex{Pattern: "sedan", Options: "i"}},
	}}
	if !reflect.DeepEqual(q.Filter, want) {
		t.Errorf("filter = %v, want %v", q.Filter, want)
	}
}

func TestBuildProductQuery_SearchEscapesRegexMeta(t *testing.T) {
	q := BuildProductQuery(url.Values{"search": {"a.b*"}})

	filter, ok := q.Filter.(bson.M)
	if !ok {
		t.Fatalf("filter type = %T", q.Filter)
	}
	or := filter["$or"].([]bson.M)
	regex := or[0]["name"].(primitive.Regex)
	if regex.Pattern != `a\.b\*` {
		t.Errorf("pattern = %q, want meta characters escaped", regex.Pattern)
	}
}

func TestBuildProductQuery_FieldFilters(t *testing.T) {
	q := BuildProductQuery(url.Values{
		"category":   {"Sedan"},
		"price[gte]": {"100"},
		"price[lte]": {"500"},
		"stock[gt]":  {"0"},
	})

	want := bson.M{
		"category": "Sedan",
		"price":    bson.M{"$gte": 100.0, "$lte": 500.0},
		"stock":    bson.M{"$gt": 0.0},
	}
	if !reflect.DeepEqual(q.Filter, want) {
		t.Errorf("filter = %v, want %v", q.Filter, want)
	}
}

func TestBuildProductQuery_Pagination(t *testing.T) {
	tests := []struct {
		name      string
		page      string
		limit     string
		wantLimit int64
		wantSkip  int64
	}{
		{"explicit", "3", "5", 5, 10},
		{"first page", "1", "20", 20, 0},
		{"garbage page falls back", "abc", "5", 5, 0},
		{"zero page falls back", "0", "5", 5, 0},
		{"negative limit falls back", "2", "-1", 10, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := BuildProductQuery(url.Values{"page": {tt.page}, "limit": {tt.limit}})
			if q.Limit != tt.wantLimit {
				t.Errorf("limit = %d, want %d", q.Limit, tt.wantLimit)
			}
			if q.Skip != tt.wantSkip {
				t.Errorf("skip = %d, want %d", q.Skip, tt.wantSkip)
			}
		})
	}
}

func TestBuildProductQuery_ReservedKeysExcluded(t *testing.T) {
	q := BuildProductQuery(url.Values{
		"search": {"x"},
		"page":   {"2"},
		"limit":  {"5"},
		"brand":  {"Acme"},
	})

	filter := q.Filter.(bson.M)
	for _, key := range []string{"search", "page", "limit"} {
		if _, ok := filter[key]; ok {
			t.Errorf("reserved key %q leaked into the filter", key)
		}
	}
	if filter["brand"] != "Acme" {
		t.Errorf("brand = %v, want Acme", filter["brand"])
	}
}
