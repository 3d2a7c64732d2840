// Package scene holds the rotatable objects a trackball drives.
//
// A [Scene] is the concrete orientation sink: the trackball computes an
// orientation, and [Scene.ApplyOrientation] writes it into the object's
// rotation. Writes for ids that were never added, or were removed, fail
// with an error wrapping trackball.ErrObjectNotFound.
//
// Scenes come from a built-in preset or a YAML description:
//
//	name: pair
//	camera: 6
//	objects:
//	  - name: left
//	    mesh: cube
//	    size: 1.2
//	    offset: [-1.3, 0, 0]
//	  - name: right
//	    mesh: globe
//	    size: 0.7
//	    offset: [1.3, 0, 0]
//
// Mesh kinds are cube, sphere, globe and axes.
package scene
