/*
Package symxform implements 3-vectors and 4x4 affine transforms for
single-particle cryo-EM reconstruction geometry: rotation composition,
inversion, and interconversion between six Euler-angle conventions
(EMAN, IMAGIC, SPIDER, MRC, XYZ, quaternion/axis-angle) plus direct
matrix construction.

# BSD License

# Copyright (c) the symxform authors

All rights reserved.

Please refer to the license file for more information.
*/
package symxform
