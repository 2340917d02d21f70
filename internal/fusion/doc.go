// Package fusion combines two independent position-estimate streams and two
// independent angular-rate streams into fused outputs.
//
// The core is a small stateful combiner: a cache of the most recent sample
// per input role, a pair of weighted-blend engines, and a controller that
// fires an engine whenever a role arrives and its counterpart has ever been
// seen. Fusion is deliberately naive: positions and covariances are blended
// elementwise by fixed weights, orientation is passed through from the lidar
// side, and no attempt is made to match timestamps between the two halves of
// a pair.
package fusion
