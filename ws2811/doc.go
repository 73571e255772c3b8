// Package ws2811 drives WS2811 LED strings from the MOSI line of a plain SPI
// peripheral.
//
// The WS2811 encodes a zero as 220-380ns high followed by 580-1000ns low, and
// a one as 580-1000ns high followed by 580-1000ns low. With the SPI clock at
// 3MHz one SPI bit lasts 333ns, so every WS2811 bit is sent as four SPI bits:
// a zero as 0b1000 and a one as 0b1100.
//
// The SPI clock must be set by the caller between MinFreq and MaxFreq. Below
// 3MHz the low part of a zero runs past 1000ns, above 3.44MHz both halves of
// a one drop below 580ns.
//
// Datasheet
//
// Worldsemi WS2811 datasheet v1.4: http://www.world-semi.com/DownLoadFile/129
package ws2811
