/*
Package orientgen generates orientations (azimuth/altitude pairs, degrees)
that tile the asymmetric unit of a symmetry.Group: evenly-spaced (Eman,
Even), spiral (Saff), random, and a repulsion-refined variant (Optimum) of
any of the above.
*/
package orientgen
