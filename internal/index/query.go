package index

import (
	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"
)

// Query is the boolean term-query combinator spec.md §4.2 requires: MUST
// (intersect), SHOULD (union, required only when every clause in the query
// is SHOULD), and MUST_NOT (subtract). It wraps bleve's query types behind
// its own methods so internal/resolve composes candidate queries without
// importing a search-engine package directly — the store "is replaceable by
// any engine that provides exact-term boolean queries," per spec.
type Query struct {
	must    []query.Query
	should  []query.Query
	mustNot []query.Query
}

// NewQuery returns an empty combinator; clauses are added with the Must*/
// Should/MustNot methods, each of which returns the receiver for chaining.
func NewQuery() *Query {
	return &Query{}
}

// Must requires field to hold value exactly (keyword term equality).
func (q *Query) Must(field, value string) *Query {
	q.must = append(q.must, keywordTerm(field, value))
	return q
}

// MustInt requires field to hold value exactly (numeric term equality). For
// a multi-valued integer field, this matches if any of the field's values
// equals value.
func (q *Query) MustInt(field string, value int) *Query {
	q.must = append(q.must, numericTerm(field, value))
	return q
}

// MustOneOf adds a single required clause satisfied when field holds any of
// values — the "SHOULD-union wrapped in a MUST" shape spec.md's candidate
// queries use for `node_type ∈ allowed-set`. An empty values list can never
// match, so it is encoded as an always-false clause rather than silently
// dropped (a missing node-type mapping means "no candidates," not "no
// filter").
func (q *Query) MustOneOf(field string, values ...string) *Query {
	if len(values) == 0 {
		q.must = append(q.must, bleve.NewMatchNoneQuery())
		return q
	}
	disjunction := bleve.NewDisjunctionQuery()
	for _, v := range values {
		disjunction.AddQuery(keywordTerm(field, v))
	}
	disjunction.SetMin(1)
	q.must = append(q.must, disjunction)
	return q
}

// Should adds an optional clause: present or absent, it never excludes a
// hit on its own, but when every clause in the query is a Should, at least
// one of them must match (spec.md's "≥1 required" case).
func (q *Query) Should(field, value string) *Query {
	q.should = append(q.should, keywordTerm(field, value))
	return q
}

// MustNot excludes any hit where field holds value.
func (q *Query) MustNot(field, value string) *Query {
	q.mustNot = append(q.mustNot, keywordTerm(field, value))
	return q
}

func (q *Query) build() query.Query {
	bq := bleve.NewBooleanQuery()
	if len(q.must) > 0 {
		bq.AddMust(q.must...)
	}
	if len(q.should) > 0 {
		bq.AddShould(q.should...)
		if len(q.must) == 0 && len(q.mustNot) == 0 {
			bq.SetMinShould(1)
		}
	}
	if len(q.mustNot) > 0 {
		bq.AddMustNot(q.mustNot...)
	}
	return bq
}

func keywordTerm(field, value string) query.Query {
	t := bleve.NewTermQuery(value)
	t.SetField(field)
	return t
}

func numericTerm(field string, value int) query.Query {
	v := float64(value)
	inclusive := true
	r := bleve.NewNumericRangeInclusiveQuery(&v, &v, &inclusive, &inclusive)
	r.SetField(field)
	return r
}
