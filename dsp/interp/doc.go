// Package interp provides the linear interpolation primitives used to rebuild
// dense sample timelines from sparse markers.
//
//   - [Linear2]:    2-point linear interpolation
//   - [Linspace]:   evenly spaced values over an interval
//   - [FillSparse]: fill every unknown entry of a slice from its known entries,
//     interpolating between neighbours and extrapolating at the ends
package interp
