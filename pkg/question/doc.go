// Package question compiles HTS-style wildcard questions into typed
// predicates over full-context labels.
//
// A question is a list of patterns such as
//
//	*/A:-??+*   */A:-?+*   */A:?+*
//
// Each pattern names no field explicitly. The field is inferred from the
// delimiters around the variable part, which is then compiled into a range
// appropriate to the field's kind: a phoneme set, a merged integer interval,
// a boolean, a set of category codes, or nothing at all for fields that are
// always xx.
//
//	q, err := question.Parse([]string{"*/A:-??+*", "*/A:-?+*", "*/A:?+*"})
//	if err != nil {
//		return err
//	}
//	if q.Test(l) {
//		// ...
//	}
//
// Patterns the engine cannot express can be handled with the wrappers in
// package fallback.
package question
