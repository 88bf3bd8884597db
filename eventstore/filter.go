package eventstore

import (
	"cmp"
	"slices"
)

type FilterEventTypeString = string
type FilterKeyString = string
type FilterValString = string

/***** Filter *****/

// Filter selects the events of one "dynamic event stream".
// Items are OR-ed, inside an item the event types are OR-ed and AND-ed with the predicates.
type Filter struct {
	items                    []FilterItem
	sequenceNumberHigherThan MaxSequenceNumberUint
}

func (f Filter) Items() []FilterItem {
	return f.items
}

// SequenceNumberHigherThan is the exclusive lower bound for sequence numbers, 0 means unbounded.
func (f Filter) SequenceNumberHigherThan() MaxSequenceNumberUint {
	return f.sequenceNumberHigherThan
}

// WithSequenceNumberHigherThan returns a copy of the Filter that only matches events after sequenceNumber.
//
// Do not use the bounded copy for Append, the concurrency check needs the unbounded stream.
func (f Filter) WithSequenceNumberHigherThan(sequenceNumber MaxSequenceNumberUint) Filter {
	f.sequenceNumberHigherThan = sequenceNumber

	return f
}

/***** FilterItem *****/

type FilterItem struct {
	eventTypes             []FilterEventTypeString
	predicates             []FilterPredicate
	allPredicatesMustMatch bool
}

func (fi FilterItem) EventTypes() []FilterEventTypeString {
	return fi.eventTypes
}

func (fi FilterItem) Predicates() []FilterPredicate {
	return fi.predicates
}

func (fi FilterItem) AllPredicatesMustMatch() bool {
	return fi.allPredicatesMustMatch
}

/***** FilterPredicate *****/

// FilterPredicate matches a top-level string field of the JSON payload.
type FilterPredicate struct {
	key FilterKeyString
	val FilterValString
}

func P(key FilterKeyString, val FilterValString) FilterPredicate {
	return FilterPredicate{key: key, val: val}
}

func (fp FilterPredicate) Key() FilterKeyString {
	return fp.key
}

func (fp FilterPredicate) Val() FilterValString {
	return fp.val
}

/***** FilterBuilder *****/

// FilterBuilder builds a generic event filter which the engines translate into their own query language.
// Supported combinations:
//
//   - empty filter (MatchingAnyEvent)
//   - (eventType OR eventType...)
//   - (predicate OR predicate...) or (predicate AND predicate...)
//   - ((eventType OR eventType...) AND (predicate OR/AND predicate...))
//   - multiple of the above joined with OrMatching
type FilterBuilder struct {
	filter  Filter
	current FilterItem
}

// BuildEventFilter creates a FilterBuilder which must eventually be finalized with Finalize() or MatchingAnyEvent().
func BuildEventFilter() FilterBuilder {
	return FilterBuilder{}
}

// Matching starts a new FilterItem.
func (fb FilterBuilder) Matching() FilterBuilder {
	fb.current = FilterItem{}

	return fb
}

// MatchingAnyEvent directly creates an empty Filter.
func (fb FilterBuilder) MatchingAnyEvent() Filter {
	return fb.filter
}

// AnyEventTypeOf adds one or multiple EventTypes to the current FilterItem.
//
// Empty EventTypes are dropped, the rest is sorted and deduplicated.
func (fb FilterBuilder) AnyEventTypeOf(eventType FilterEventTypeString, eventTypes ...FilterEventTypeString) FilterBuilder {
	all := slices.Concat(fb.current.eventTypes, []FilterEventTypeString{eventType}, eventTypes)
	all = slices.DeleteFunc(all, func(e FilterEventTypeString) bool { return e == "" })
	slices.Sort(all)
	fb.current.eventTypes = slices.Clip(slices.Compact(all))

	return fb
}

// AndAnyPredicateOf adds predicates to the current FilterItem, ANY of them has to match.
func (fb FilterBuilder) AndAnyPredicateOf(predicate FilterPredicate, predicates ...FilterPredicate) FilterBuilder {
	fb.current.allPredicatesMustMatch = false
	fb.current.predicates = fb.sanitizePredicates(predicate, predicates...)

	return fb
}

// AndAllPredicatesOf adds predicates to the current FilterItem, ALL of them have to match.
func (fb FilterBuilder) AndAllPredicatesOf(predicate FilterPredicate, predicates ...FilterPredicate) FilterBuilder {
	fb.current.allPredicatesMustMatch = true
	fb.current.predicates = fb.sanitizePredicates(predicate, predicates...)

	return fb
}

// sanitizePredicates drops partial predicates (key or val is ""), sorts and deduplicates the rest.
func (fb FilterBuilder) sanitizePredicates(predicate FilterPredicate, predicates ...FilterPredicate) []FilterPredicate {
	all := slices.Concat(fb.current.predicates, []FilterPredicate{predicate}, predicates)
	all = slices.DeleteFunc(all, func(p FilterPredicate) bool { return p.key == "" || p.val == "" })
	slices.SortFunc(all, func(a, b FilterPredicate) int {
		if c := cmp.Compare(a.key, b.key); c != 0 {
			return c
		}

		return cmp.Compare(a.val, b.val)
	})

	return slices.Clip(slices.Compact(all))
}

// OrMatching finalizes the current FilterItem and starts a new one.
func (fb FilterBuilder) OrMatching() FilterBuilder {
	fb.filter = fb.Finalize()
	fb.current = FilterItem{}

	return fb
}

// WithSequenceNumberHigherThan sets the exclusive lower bound for sequence numbers.
func (fb FilterBuilder) WithSequenceNumberHigherThan(sequenceNumber MaxSequenceNumberUint) FilterBuilder {
	fb.filter.sequenceNumberHigherThan = sequenceNumber

	return fb
}

// Finalize returns the Filter including the current FilterItem.
// A FilterItem without EventTypes and Predicates is dropped.
func (fb FilterBuilder) Finalize() Filter {
	if len(fb.current.eventTypes) > 0 || len(fb.current.predicates) > 0 {
		fb.filter.items = append(slices.Clip(fb.filter.items), fb.current)
	}

	return fb.filter
}
