/*
Package symmetry implements point-group symmetry algebra for
single-particle cryo-EM reconstruction: cyclic (Cn), dihedral (Dn),
helical (Hn) and platonic (tetrahedral, octahedral, icosahedral) groups,
their symmetry-related transform lists, asymmetric-unit membership tests
and orientation reduction.
*/
package symmetry
