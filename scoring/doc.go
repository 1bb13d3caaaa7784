// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package scoring aggregates juror evaluations into rankings and statistics.

The functions in aggregate.go are pure: they take a State and either read it
or mutate the State they were handed. Service wraps them with a load, mutate,
write cycle against a store.Store and serializes writers in one process.

# Rules

  - a score is an integer from 1 to 10, and every active category must be scored
  - an evaluation's aggregate is the mean of its scores
  - one evaluation per juror and candidate; re-submitting replaces it in place
  - a candidate's average is the mean of its evaluations' aggregates
  - rankings sort by average, descending; ties keep candidate order
  - candidates with no evaluations are left out of rankings
  - deleting a category strips its scores and recomputes aggregates;
    evaluations left with no scores are dropped

# No Data

RankCandidates returns an empty slice and ComputeStatistics returns
ok == false when nothing has been scored. ErrNoData is the error form used
by PublishSnapshot.
*/
package scoring
