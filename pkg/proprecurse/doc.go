/*
Package proprecurse provides mutually recursive generators for
property-based testing with gopter.

# Overview

gopter generators for recursive data types are easy to write as long as a
type only refers to itself. Two or more types whose generators depend on
each other (A contains B, B contains A) are harder: building A's generator
needs B's, building B's needs A's, and the naive construction never
terminates. proprecurse solves this with two pieces:

  - StrategySet: a type-indexed, memoizing, cheaply cloned store of
    generators, so generator builders can request each other in any order
    without pre-declaring a recursion group.
  - MutuallyRecursive: a combinator that turns a terminal-case generator
    plus a "one recursion step" function into a generator whose values have
    a hard depth bound and a tunable expected size.

The depth bound is enforced by explicit finite unrolling, never by call
recursion: each generation call builds a chain of depth-limited
approximations, deepest first, so truncation at any layer is always a
complete, valid generator.

# Basic Usage

Suppose First and Second embed each other:

	type First struct {
	    Children []Second // empty means the terminal case
	}

	type Second struct {
	    Child *First // nil means the terminal case
	}

Define a builder per type. Each builder asks the set for the generators it
depends on, including the one being defined:

	func arbFirst(set *proprecurse.StrategySet) gopter.Gen {
	    return proprecurse.MutuallyRecursive[First](gen.Const(First{}), 5, 32, 8, set,
	        func(set *proprecurse.StrategySet) gopter.Gen {
	            return gen.SliceOf(proprecurse.Get[Second](set, arbSecond)).
	                Map(func(children []Second) First {
	                    return First{Children: children}
	                })
	        })
	}

	func arbSecond(set *proprecurse.StrategySet) gopter.Gen {
	    return proprecurse.MutuallyRecursive[Second](gen.Const(Second{}), 3, 32, 1, set,
	        func(set *proprecurse.StrategySet) gopter.Gen {
	            return proprecurse.Get[First](set, arbFirst).
	                Map(func(f First) Second {
	                    return Second{Child: &f}
	                })
	        })
	}

To use them, pass in an empty set:

	properties.Property("round trip", prop.ForAll(
	    func(f First) bool { return encodeDecode(f) == f },
	    arbFirst(proprecurse.NewStrategySet()),
	))

# Sizing Parameters

MutuallyRecursive takes three integers, the same knobs as gopter-style
recursive generation elsewhere:

  - depth: hard upper bound on the number of recursion layers. A generated
    value never nests deeper, whatever the recursion step does.
  - desiredSize: hint for the expected total number of nodes; larger values
    raise the chance of taking the recursive alternative near the top.
  - expectedBranchSize: hint for how many recursive slots one recursion
    step introduces (e.g. the expected slice length); larger values lower
    branch probabilities so the expected size stays near desiredSize.

Branch probabilities are clamped to 0.9, so the terminal case stays
selectable at every layer. The parameters apply only to values of the type
being defined; nested types are sized by their own combinator calls.

Zero values degrade rather than fail: depth 0 generates only terminal
values, and desiredSize 0 or expectedBranchSize 0 drive every branch
probability to zero with the same effect. Callers that want strict
rejection must validate before calling.

# Thread Safety

  - A *StrategySet handle is NOT safe for concurrent use; Get mutates it.
  - Clone is cheap (structural sharing) and produces an independent handle,
    so clones may be used freely from different goroutines.
  - Generators returned by Get and MutuallyRecursive are immutable after
    construction and safe to sample concurrently, subject to gopter's own
    rules about sharing GenParameters.
*/
package proprecurse
