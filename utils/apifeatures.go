package utils

import (
	"net/url"
	"regexp"
	"strconv"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ta9iBarkat/ecommerce-platform/store"
)

const defaultPageSize = 10

// operatorKey matches filter keys of the form field[gte], field[lt], etc.
var operatorKey = regexp.MustCompile(`^(\w+)\[(gt|gte|lt|lte)\]$`)

// BuildProductQuery translates catalog listing query parameters into a
// storage-level query: keyword search over name and description, field
// filters with comparison operators, and pagination.
//
//	?search=sedan&category=Sedan&price[gte]=100&price[lte]=500&page=2&limit=5
func BuildProductQuery(values url.Values) store.ProductQuery {
	filter := bson.M{}

	if keyword := values.Get("search"); keyword != "" {
		regex := primitive.Regex{Pattern: regexp.QuoteMeta(keyword), Options: "i"}
		filter["$or"] = []bson.M{
			{"name": regex},
			{"description": regex},
		}
	}

	for key, vals := range values {
		if len(vals) == 0 || vals[0] == "" {
			continue
		}
		switch key {
		case "search", "page", "limit":
			continue
		}

		if m := operatorKey.FindStringSubmatch(key); m != nil {
			field, op := m[1], "$"+m[2]
			cond, ok := filter[field].(bson.M)
			if !ok {
				cond = bson.M{}
				filter[field] = cond
			}
			cond[op] = numericOrString(vals[0])
			continue
		}

		filter[key] = numericOrString(vals[0])
	}

	page := positiveInt(values.Get("page"), 1)
	limit := positiveInt(values.Get("limit"), defaultPageSize)

	return store.ProductQuery{
		Filter: filter,
		Limit:  int64(limit),
		Skip:   int64((page - 1) * limit),
	}
}

func numericOrString(v string) interface{} {
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		return f
	}
	return v
}

func positiveInt(v string, fallback int) int {
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
