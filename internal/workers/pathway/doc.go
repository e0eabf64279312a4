// Package pathway groups the Zeebe job workers behind the PR pathway
// recommendation process. Each subpackage owns one task type:
//
//	recommend-pathways           score the catalog for a user and group it by tier
//	calculate-pathway-score      score a single pathway
//	manage-saved-pathways        save, remove and list a user's saved pathways
//	update-algorithm-weights     replace the administrator weight vector
//	send-recommendation-summary  email and text the user their results
//
// lookup holds the profile and weight resolution shared by the scoring
// workers.
package pathway
